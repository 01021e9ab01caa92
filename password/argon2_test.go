package password

import (
	"errors"
	"strings"
	"testing"
)

func testParams() Params {
	return Params{
		Memory:      65536,
		Time:        3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestHashAndVerifyRoundTrip(t *testing.T) {
	hasher, err := NewHasher(testParams())
	if err != nil {
		t.Fatalf("NewHasher error: %v", err)
	}

	digest, err := hasher.Hash("Str0ngPW!-candidate")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	if !strings.HasPrefix(digest, "$argon2id$v=19$m=65536,t=3,p=2$") {
		t.Fatalf("unexpected PHC prefix: %s", digest)
	}

	ok, err := hasher.Verify("Str0ngPW!-candidate", digest)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatal("expected verification to succeed for matching plaintext")
	}
}

func TestVerifyWrongPlaintext(t *testing.T) {
	hasher, err := NewHasher(testParams())
	if err != nil {
		t.Fatalf("NewHasher error: %v", err)
	}

	digest, err := hasher.Hash("correct-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	ok, err := hasher.Verify("wrong-password", digest)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ok {
		t.Fatal("expected verification to fail for different plaintext")
	}
}

func TestHashSaltsAreUnique(t *testing.T) {
	hasher, err := NewHasher(testParams())
	if err != nil {
		t.Fatalf("NewHasher error: %v", err)
	}

	first, err := hasher.Hash("same-password-twice")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	second, err := hasher.Hash("same-password-twice")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if first == second {
		t.Fatal("two digests of the same plaintext must not share a salt")
	}
}

func TestNeedsRehashAfterParameterUpgrade(t *testing.T) {
	weak := testParams()
	weak.Memory = 16384
	weak.Time = 1

	old, err := NewHasher(weak)
	if err != nil {
		t.Fatalf("NewHasher error: %v", err)
	}
	digest, err := old.Hash("historic-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	current, err := NewHasher(testParams())
	if err != nil {
		t.Fatalf("NewHasher error: %v", err)
	}

	// The old digest must still verify under the new Hasher.
	ok, err := current.Verify("historic-password", digest)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatal("expected historic digest to remain verifiable")
	}

	upgrade, err := current.NeedsRehash(digest)
	if err != nil {
		t.Fatalf("NeedsRehash error: %v", err)
	}
	if !upgrade {
		t.Fatal("expected NeedsRehash to flag the weaker digest")
	}

	fresh, err := current.Hash("historic-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	upgrade, err = current.NeedsRehash(fresh)
	if err != nil {
		t.Fatalf("NeedsRehash error: %v", err)
	}
	if upgrade {
		t.Fatal("fresh digest must not be flagged for rehash")
	}
}

func TestVerifyRejectsForeignAlgorithmTag(t *testing.T) {
	hasher, err := NewHasher(testParams())
	if err != nil {
		t.Fatalf("NewHasher error: %v", err)
	}

	_, err = hasher.Verify("whatever", "$bcrypt$v=19$m=65536,t=3,p=2$c2FsdHNhbHRzYWx0c2FsdA$aGFzaA")
	if !errors.Is(err, ErrUnsupportedDigest) {
		t.Fatalf("expected ErrUnsupportedDigest, got %v", err)
	}
}

func TestInvalidParamsRejected(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"low memory", func(p *Params) { p.Memory = 1024 }},
		{"zero time", func(p *Params) { p.Time = 0 }},
		{"zero parallelism", func(p *Params) { p.Parallelism = 0 }},
		{"short salt", func(p *Params) { p.SaltLength = 8 }},
		{"short key", func(p *Params) { p.KeyLength = 8 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := testParams()
			tc.mutate(&p)
			if _, err := NewHasher(p); err == nil {
				t.Fatal("expected parameter validation to fail")
			}
		})
	}
}
