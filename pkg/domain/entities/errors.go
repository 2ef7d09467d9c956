package entities

import "errors"

var (
	// ErrUnknownChemical is returned when an abbreviation has no property record.
	ErrUnknownChemical = errors.New("unknown chemical")

	// ErrInvalidChemical is returned for property records that cannot be used
	// in a mass or volume conversion.
	ErrInvalidChemical = errors.New("invalid chemical properties")

	// ErrMissingConcentration is returned when a reagent has no conc_item<N>
	// entry for a chemical position.
	ErrMissingConcentration = errors.New("missing concentration")

	// ErrMissingTargetVolume is returned when a populated reagent has no
	// target final volume.
	ErrMissingTargetVolume = errors.New("missing target final volume")

	// ErrVolumeExceeded is returned when a reagent's chemicals displace more
	// than its target final volume.
	ErrVolumeExceeded = errors.New("target volume exceeded")

	// ErrConfigMismatch is returned when run inputs do not fit the lab layout.
	ErrConfigMismatch = errors.New("configuration mismatch")
)
