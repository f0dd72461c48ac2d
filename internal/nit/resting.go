package nit

// Rest отправляет нита отдыхать. Повторный вызов во время отдыха
// ничего не меняет.
func (n *Nit) Rest() error {
	if err := n.commandAllowed(); err != nil {
		return err
	}
	if n.IsResting() {
		return nil
	}
	if n.state == StateMoving {
		n.abandonJourney()
	}
	n.beginRest()
	return nil
}

// beginRest входит в начальное состояние отдыха
func (n *Nit) beginRest() {
	n.releaseOpponent()
	n.timeResting = 0
	n.timeSinceRest = 0
	n.sprinting = false
	n.setState(StateRestingInitial)
}

func (n *Nit) controlResting(dt float64) {
	switch n.state {
	case StateRestingInitial:
		n.pickRestingState()
	case StateRestingHP:
		n.hitPoints += n.restPoints(dt, HPRestDivisor)
		if n.hitPoints >= n.MaxHitPoints() {
			n.hitPoints = n.MaxHitPoints()
			n.pickRestingState()
		}
	case StateRestingStamina:
		n.staminaPoints += n.restPoints(dt, StaminaRestDivisor)
		if n.staminaPoints >= n.MaxStaminaPoints() {
			n.staminaPoints = n.MaxStaminaPoints()
			n.pickRestingState()
		}
	}
}

// pickRestingState: сначала здоровье, потом стамина, иначе отдых окончен
func (n *Nit) pickRestingState() {
	n.timeResting = 0
	switch {
	case n.hitPoints < n.MaxHitPoints():
		n.setState(StateRestingHP)
	case n.staminaPoints < n.MaxStaminaPoints():
		n.setState(StateRestingStamina)
	default:
		n.setState(StateEmpty)
	}
}

// restPoints переводит накопленное время отдыха в целые очки.
// Дробный остаток остаётся в накопителе.
func (n *Nit) restPoints(dt, divisor float64) int {
	rate := float64(n.toughness) / (RestPeriod * divisor)
	if rate <= 0 {
		return 0
	}
	n.timeResting += dt
	points := int(n.timeResting * rate)
	if points > 0 {
		n.timeResting -= float64(points) / rate
	}
	return points
}
