package domain

// ProductSpec is the customer-facing selection that prices one piece:
// the piece's weight plus the chosen composition, material, diamond
// option and ring size.
type ProductSpec struct {
	// Weight in grams. Required, must be positive.
	Weight float64

	// Composition is the metal purity tier. Required.
	Composition Composition

	// Material is the metal color. Optional; an unmatched material is
	// ignored rather than rejected.
	Material Material

	// DiamondType is the diamond option. Optional; empty or "none"
	// means no diamond.
	DiamondType DiamondType

	// DiamondCarat is the carat weight. Defaults to zero.
	DiamondCarat float64

	// RingSize is the selected ring size. Optional.
	RingSize string
}

// AvailableOptions describes the option space of a catalog product,
// used for price-range estimation across all selectable combinations.
type AvailableOptions struct {
	Weight       float64
	Compositions []Composition
	Materials    []Material
	DiamondTypes []DiamondType
	DiamondCarat float64
	RingSizes    []string
}
