package nit

// Границы атрибутов
const (
	MinAttribute = 1
	MaxAttribute = 200

	// Диапазон для случайно сгенерированных нитов
	MinInitialAttribute = 25
	MaxInitialAttribute = 100
)

// Время
const (
	// MaxTimeStep: наибольший допустимый шаг AdvanceTime, секунд
	MaxTimeStep = 0.2

	// RestInterval: через сколько секунд без отдыха нит обязан отдохнуть
	RestInterval = 180.0

	// AttackDuration: длительность атаки
	AttackDuration = 1.0

	// WorkEffort: работа длится WorkEffort / strength секунд
	WorkEffort = 500.0
)

// Движение
const (
	BaseSpeedFactor   = 1.5
	SprintSpeedFactor = 3.0

	ClimbFactor   = 0.5
	DescendFactor = 1.2

	// Стамина, расходуемая за секунду спринта (0.1 за каждые 0.1 с)
	SprintStaminaPerSecond = 1.0

	// Вероятность начать спринт за тик при поведении по умолчанию
	SprintChance = 0.1
)

// Поиск пути
const (
	PathIterationCap = 3000

	// EnitWanderRadius: радиус выбора случайной цели для энита
	EnitWanderRadius = 5

	randomSampleAttempts = 100
)

// Бой
const (
	DodgeFactor = 0.20
	BlockFactor = 0.25

	// Урон равен силе атакующего, делённой на DamageDivisor (целочисленно)
	DamageDivisor = 10
)

// Опыт
const (
	XPPerStep   = 1
	XPPerWork   = 10
	XPPerCombat = 20

	// SkillThreshold: столько временного опыта расходуется на одно улучшение
	SkillThreshold = 10
)

// Отдых
const (
	// Восстановление за секунду: toughness / (RestPeriod * HPRestDivisor)
	RestPeriod         = 0.2
	HPRestDivisor      = 200.0
	StaminaRestDivisor = 100.0
)

// Фракции
const (
	MaxFactionMembers = 50
)
