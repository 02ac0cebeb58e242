package domain

import "fmt"

// Validate checks the record invariants. Repositories call it on every
// read and write so a malformed row never reaches the workflow.
func (p *Project) Validate() error {
	if p == nil {
		return fmt.Errorf("project is nil")
	}
	if p.OwnerID == "" {
		return fmt.Errorf("project %s: owner required", p.ID)
	}
	if !p.Mode.Valid() {
		return fmt.Errorf("project %s: invalid mode %q", p.ID, p.Mode)
	}
	switch p.Mode {
	case ModeAuditor:
		if !p.AuditorType.Valid() {
			return fmt.Errorf("project %s: invalid auditor type %q", p.ID, p.AuditorType)
		}
	case ModeEngineer:
		if p.AuditorType != "" {
			return fmt.Errorf("project %s: auditor type not allowed in engineer mode", p.ID)
		}
	}
	if p.Lens != "" {
		if !p.Lens.Valid() {
			return fmt.Errorf("project %s: invalid lens %q", p.ID, p.Lens)
		}
		if !p.RequiresLens() {
			return fmt.Errorf("project %s: lens only applies to consultancy audits", p.ID)
		}
	}
	if !p.Status.Valid() {
		return fmt.Errorf("project %s: invalid status %q", p.ID, p.Status)
	}
	if p.Status.InFlight() {
		return fmt.Errorf("project %s: in-flight status %s cannot be stored", p.ID, p.Status)
	}
	if !p.Tier.Valid() {
		return fmt.Errorf("project %s: invalid tier %d", p.ID, p.Tier)
	}
	return nil
}
