package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

func newCapturingRenderer() (*NullRenderer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewNullRenderer(logging.NewLoggerWithWriter(&buf, "DEBUG")), &buf
}

func TestNullRenderer_LogsEachCall(t *testing.T) {
	tests := []struct {
		name     string
		call     func(r *NullRenderer)
		expected []string
	}{
		{
			name:     "Clear",
			call:     func(r *NullRenderer) { r.Clear() },
			expected: []string{"Clear called"},
		},
		{
			name:     "Present",
			call:     func(r *NullRenderer) { r.Present() },
			expected: []string{"Present called", `"frame":1`},
		},
		{
			name: "Ship",
			call: func(r *NullRenderer) {
				r.RenderShip(entity.NewShip(7, entity.ShipStats{MaxSpeed: 20}))
			},
			expected: []string{"RenderShip called", `"ship_id":7`},
		},
		{
			name: "Bullet",
			call: func(r *NullRenderer) {
				r.RenderBullet(entity.NewBullet(9, 7, physics.Vector3D{}, physics.Vector3D{}, 0.05, 0, 10))
			},
			expected: []string{"RenderBullet called", `"bullet_id":9`, `"owner_id":7`},
		},
		{
			name: "Asteroid",
			call: func(r *NullRenderer) {
				r.RenderAsteroid(entity.NewAsteroid(11, physics.Vector3D{}, physics.Vector3D{}, 3))
			},
			expected: []string{"RenderAsteroid called", `"asteroid_id":11`, `"size":3`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, buf := newCapturingRenderer()

			tt.call(r)

			for _, want := range tt.expected {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestNullRenderer_NilEntities(t *testing.T) {
	r, buf := newCapturingRenderer()

	assert.NotPanics(t, func() {
		r.RenderShip(nil)
		r.RenderBullet(nil)
		r.RenderAsteroid(nil)
	})
	assert.Contains(t, buf.String(), "RenderShip called with nil ship")
	assert.Contains(t, buf.String(), "RenderBullet called with nil bullet")
	assert.Contains(t, buf.String(), "RenderAsteroid called with nil asteroid")
}

func TestNullRenderer_InfoLevelIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	r := NewNullRenderer(logging.NewLoggerWithWriter(&buf, "INFO"))

	r.Clear()
	r.Present()

	assert.Empty(t, buf.String())
	assert.Equal(t, uint64(1), r.Frames())
}

func TestNullRenderer_NilLogger(t *testing.T) {
	r := NewNullRenderer(nil)
	assert.NotPanics(t, func() { r.Present() })
}

var _ entity.Renderer = (*NullRenderer)(nil)
