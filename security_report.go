package authcore

// SecurityReport returns a read-only snapshot of the engine's security
// posture for diagnostics.
func (e *Engine) SecurityReport() SecurityReport {
	if e == nil {
		return SecurityReport{}
	}

	activeKID := ""
	if e.keyring != nil {
		activeKID = e.keyring.ActiveKID()
	}

	return SecurityReport{
		ProductionMode:   e.config.Security.ProductionMode,
		SigningAlgorithm: e.config.Token.SigningMethod,
		ActiveKeyID:      activeKID,
		TokenTTL:         e.config.Token.TTL,
		TokenLeeway:      e.config.Token.Leeway,
		Argon2: PasswordConfigReport{
			Memory:      e.config.Password.Memory,
			Time:        e.config.Password.Time,
			Parallelism: e.config.Password.Parallelism,
			SaltLength:  e.config.Password.SaltLength,
			KeyLength:   e.config.Password.KeyLength,
		},
		RehashOnLogin:  e.config.Password.UpgradeOnLogin,
		AuditEnabled:   e.config.Audit.Enabled,
		MetricsEnabled: e.config.Metrics.Enabled,
	}
}
