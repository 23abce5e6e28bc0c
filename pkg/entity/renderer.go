package entity

// Renderer handles rendering simulated entities
type Renderer interface {
	RenderShip(ship *Ship)
	RenderBullet(bullet *Bullet)
	RenderAsteroid(asteroid *Asteroid)
	Clear()
	Present()
}
