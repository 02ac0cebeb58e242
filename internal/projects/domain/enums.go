package domain

import "strings"

type Mode string

const (
	ModeAuditor  Mode = "AUDITOR"
	ModeEngineer Mode = "ENGINEER"
)

type AuditorType string

const (
	AuditorConsultancy AuditorType = "CONSULTANCY"
	AuditorGovernance  AuditorType = "GOVERNANCE"
)

// Lens is the analytical framing filter applied by the auditor template.
type Lens string

const (
	LensA Lens = "A"
	LensB Lens = "B"
	LensC Lens = "C"
)

func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToUpper(strings.TrimSpace(s))) {
	case ModeAuditor:
		return ModeAuditor, true
	case ModeEngineer:
		return ModeEngineer, true
	}
	return "", false
}

// ParseAuditorType accepts "" as absent.
func ParseAuditorType(s string) (AuditorType, bool) {
	switch AuditorType(strings.ToUpper(strings.TrimSpace(s))) {
	case "":
		return "", true
	case AuditorConsultancy:
		return AuditorConsultancy, true
	case AuditorGovernance:
		return AuditorGovernance, true
	}
	return "", false
}

// ParseLens accepts "" as absent.
func ParseLens(s string) (Lens, bool) {
	switch Lens(strings.ToUpper(strings.TrimSpace(s))) {
	case "":
		return "", true
	case LensA:
		return LensA, true
	case LensB:
		return LensB, true
	case LensC:
		return LensC, true
	}
	return "", false
}

func (m Mode) Valid() bool {
	return m == ModeAuditor || m == ModeEngineer
}

func (t AuditorType) Valid() bool {
	return t == AuditorConsultancy || t == AuditorGovernance
}

func (l Lens) Valid() bool {
	return l == LensA || l == LensB || l == LensC
}
