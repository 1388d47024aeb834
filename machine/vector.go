package machine

//go:generate go tool stringer -type=Vector -linecomment

// Vector identifies an interrupt source.
type Vector int

const (
	VECTOR_WDT   = Vector(iota) // WDT
	VECTOR_TA0_0                // TA0_0
	VECTOR_TA0_N                // TA0_N
	VECTOR_TA1_0                // TA1_0
	VECTOR_TA1_N                // TA1_N
	VECTOR_TB0_0                // TB0_0
	VECTOR_TB0_N                // TB0_N
	VECTOR_TA2_0                // TA2_0
	VECTOR_TA2_N                // TA2_N
	VECTOR_TA3_0                // TA3_0
	VECTOR_TA3_N                // TA3_N
	VECTOR_TA4_0                // TA4_0
	VECTOR_TA4_N                // TA4_N
)
