package cards

// DefaultLibrary returns the built-in catalog used when the external card
// source is missing or unreadable. The server must always be able to start
// with this alone.
func DefaultLibrary() *Library {
	return NewLibrary(
		[]Control{
			{ID: "ctrl-firewall-patch", Label: "Patched firewall zero-day overnight", Delta: 10},
			{ID: "ctrl-incident-drill", Label: "Quarterly incident drill paid off", Delta: 9},
			{ID: "ctrl-mfa", Label: "MFA rollout everywhere", Delta: 8},
			{ID: "ctrl-logging", Label: "Centralized logs lit up early", Delta: 6},
			{ID: "ctrl-edr", Label: "EDR auto-contained blast radius", Delta: 10},
			{ID: "ctrl-tabletop", Label: "Tabletop found gaps before go-live", Delta: 7},
			{ID: "ctrl-inventory", Label: "Asset inventory complete", Delta: 5},
			{ID: "ctrl-chaos", Label: "Chaos exercise hardened the stack", Delta: 9},
			{ID: "ctrl-champions", Label: "Security champions escalated fast", Delta: 6},
			{ID: "ctrl-waf", Label: "WAF rule blocked exploit chain", Delta: 8},
			{ID: "ctrl-runbooks", Label: "Runbooks codified and followed", Delta: 5},
			{ID: "ctrl-intel", Label: "Threat intel early warning", Delta: 10},
		},
		[]Misstep{
			{ID: "mis-key-leak", Label: "Prod API key leaked in git", Delta: -10, Tags: []string{"key-leak", "secrets"}},
			{ID: "mis-ransomware", Label: "Ransom note lands on shared drive", Delta: -10, Tags: []string{"ransomware", "backup"}},
			{ID: "mis-s3-open", Label: "Exposed storage bucket discovered", Delta: -9, Tags: []string{"s3"}},
			{ID: "mis-vpn", Label: "Unpatched VPN exploit", Delta: -10, Tags: []string{"patch"}},
			{ID: "mis-dns", Label: "DNS hijack diverts users", Delta: -8, Tags: []string{"dns"}},
			{ID: "mis-shadow", Label: "Shadow IT reverse tunnel", Delta: -7, Tags: []string{"shadow"}},
			{ID: "mis-phish", Label: "Phish bypassed training", Delta: -6, Tags: []string{"phish"}},
			{ID: "mis-ci-secrets", Label: "CI secrets pushed to git", Delta: -10, Tags: []string{"secrets"}},
			{ID: "mis-backup", Label: "Backup restore fails audit", Delta: -10, Tags: []string{"backup"}},
			{ID: "mis-fatigue", Label: "Alert fatigue hid the signal", Delta: -5, Tags: []string{"fatigue"}},
			{ID: "mis-change", Label: "Change freeze ignored", Delta: -7, Tags: []string{"change"}},
			{ID: "mis-vendor", Label: "Third-party outage cascades", Delta: -6, Tags: []string{"vendor"}},
		},
		[]Mitigation{
			{ID: "mit-key-rotation", Label: "Key rotation & token revocation", Mitigates: []string{"key-leak", "secrets"}},
			{ID: "mit-immutable-backups", Label: "Immutable backups & tested restores", Mitigates: []string{"backup", "ransomware"}},
			{ID: "mit-mfa", Label: "MFA on risky paths", Mitigates: []string{"phish"}},
			{ID: "mit-dnssec", Label: "DNSSEC + monitoring", Mitigates: []string{"dns"}},
			{ID: "mit-vpn-patch", Label: "Emergency VPN patch sprint", Mitigates: []string{"patch"}},
			{ID: "mit-waf", Label: "WAF hotfix & hardening", Mitigates: []string{"s3", "shadow"}},
			{ID: "mit-runbook", Label: "Runbook + rotation on-call", Mitigates: []string{"fatigue", "change"}},
			{ID: "mit-secrets-hygiene", Label: "Secrets scanning + auto-revoke", Mitigates: []string{"key-leak", "secrets"}},
			{ID: "mit-drill", Label: "DR drill & vendor backup", Mitigates: []string{"backup", "vendor"}},
			{ID: "mit-segmentation", Label: "Segmentation + EDR isolate", Mitigates: []string{"ransomware", "shadow"}},
		},
		[]int{4, 9, 13, 18, 22, 27, 33, 38, 44, 49},
	)
}
