package game

import (
	"github.com/BennettDISH/admiral-undersea/catalog"
	"github.com/BennettDISH/admiral-undersea/network"
)

// FireTorpedo resolves a torpedo shot at the target coordinate. The torpedo
// must be fully charged; firing consumes the whole charge whatever the
// outcome. Manhattan distance to the enemy's true position decides damage:
// 0 is a direct hit for 2, 1 a near hit for 1, anything farther a miss.
func (e *Engine) FireTorpedo(code string, team catalog.Team, target Position) error {
	st, exists := e.store.Get(code)
	if !exists {
		return ErrUnknownGame
	}

	st.mu.Lock()

	if st.Winner != "" {
		st.mu.Unlock()
		return ErrGameOver
	}

	sub := st.Submarines[team]
	if sub.Systems[catalog.SystemTorpedo] < catalog.SystemTorpedo.Max() {
		st.mu.Unlock()
		return ErrTorpedoNotCharged
	}
	sub.Systems[catalog.SystemTorpedo] = 0
	if e.metrics != nil {
		e.metrics.IncTorpedoesFired()
	}

	enemyTeam := team.Opponent()
	enemy := st.Submarines[enemyTeam]
	distance := abs(target.X-enemy.Position.X) + abs(target.Y-enemy.Position.Y)

	damage := 0
	switch distance {
	case 0:
		damage = 2
	case 1:
		damage = 1
	}
	st.touch()

	if damage == 0 {
		e.publisher.ToRoom(code, network.MsgTypeTorpedoMiss, TorpedoMissEvent{Team: team, Target: target})
		st.mu.Unlock()
		return nil
	}

	enemy.Health -= damage
	if enemy.Health < 0 {
		enemy.Health = 0
	}
	e.publisher.ToRoom(code, network.MsgTypeTorpedoHit, TorpedoHitEvent{
		Team:        team,
		Target:      target,
		Damage:      damage,
		EnemyHealth: enemy.Health,
	})

	var won bool
	if enemy.Health <= 0 {
		st.Winner = team
		won = true
		e.publisher.ToRoom(code, network.MsgTypeGameOver, GameOverEvent{Winner: team})
	}
	st.mu.Unlock()

	if won {
		e.cancelPendingAutomation(code, catalog.TeamAlpha)
		e.cancelPendingAutomation(code, catalog.TeamBravo)
	}

	if won && e.onGameOver != nil {
		e.onGameOver(code, team)
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
