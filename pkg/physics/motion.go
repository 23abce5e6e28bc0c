package physics

// MovementState tracks the kinematic state of a thrusting body
type MovementState struct {
	Position Vector3D
	Velocity Vector3D
	Facing   Orientation
	Thrust   float64 // acceleration rate, units/s²
	MaxSpeed float64
}

// Accelerate adds facing * Thrust * dt to the velocity and caps its
// magnitude at MaxSpeed.
func (m *MovementState) Accelerate(deltaTime float64) {
	thrust := m.Facing.Forward().Scale(m.Thrust * deltaTime)
	m.Velocity = m.Velocity.Add(thrust).ClampLength(m.MaxSpeed)
}

// Integrate advances the position by Velocity * dt
func (m *MovementState) Integrate(deltaTime float64) {
	m.Position = m.Position.Add(m.Velocity.Scale(deltaTime))
}

// Speed returns the current velocity magnitude
func (m *MovementState) Speed() float64 {
	return m.Velocity.Length()
}
