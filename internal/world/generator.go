package world

import (
	"math/rand"

	"github.com/annel0/nitworld/internal/item"
	"github.com/annel0/nitworld/internal/util"
	"github.com/annel0/nitworld/internal/vec"
	"github.com/annel0/nitworld/internal/world/block"
)

// Константы высот для генерации (доля от высоты мира)
const (
	GroundMin = 0.15 // Самая низкая поверхность
	GroundMax = 0.55 // Самая высокая поверхность
)

// WorldGenerator генерирует ландшафт мира
type WorldGenerator struct {
	Seed          int64   // Сид для генерации шума
	NoiseScale    float64 // Масштаб шума высот
	TreeDensity   float64 // Шанс дерева на поверхности (от 0 до 1)
	WorkshopCount int     // Количество мастерских
	ItemCount     int     // Сколько предметов разбросать по поверхности

	noise *util.Noise
}

// NewWorldGenerator создаёт новый генератор мира
func NewWorldGenerator(seed int64) *WorldGenerator {
	return &WorldGenerator{
		Seed:          seed,
		NoiseScale:    0.08, // Настройка сглаженности ландшафта
		TreeDensity:   0.05, // 5% шанс дерева на поверхности
		WorkshopCount: 2,
		ItemCount:     6,
		noise:         util.NewPerlinNoise(seed),
	}
}

// Generate заполняет мир скалой по карте высот, сажает деревья,
// ставит мастерские и раскладывает предметы.
// Возвращает список поверхностных кубиков (воздух над опорой).
func (wg *WorldGenerator) Generate(w *World) []vec.Vec3 {
	size := w.Size()
	// Отдельный генератор для детерминированности при заданном сиде
	rng := rand.New(rand.NewSource(wg.Seed))

	var surface []vec.Vec3
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			height := wg.heightAt(x, y, size.Z)
			for z := 0; z < height; z++ {
				w.SetBlock(vec.Vec3{X: x, Y: y, Z: z}, block.RockBlockID)
			}
			if height >= size.Z {
				continue
			}

			top := vec.Vec3{X: x, Y: y, Z: height}
			if height > 0 && rng.Float64() < wg.TreeDensity {
				w.SetBlock(top, block.TreeBlockID)
				continue
			}
			surface = append(surface, top)
		}
	}

	// Мастерские встают на поверхность и перестают быть её частью
	for i := 0; i < wg.WorkshopCount && len(surface) > 0; i++ {
		j := rng.Intn(len(surface))
		w.SetBlock(surface[j], block.WorkshopBlockID)
		surface = append(surface[:j], surface[j+1:]...)
	}

	for i := 0; i < wg.ItemCount && len(surface) > 0; i++ {
		kind := item.KindLog
		if rng.Intn(2) == 1 {
			kind = item.KindBoulder
		}
		it, err := item.New(kind, item.MinWeight+rng.Intn(item.MaxWeight-item.MinWeight+1))
		if err != nil {
			continue
		}
		pos := surface[rng.Intn(len(surface))]
		if err := w.AddItem(it, pos); err != nil {
			log.Warn("не удалось положить %s в %v: %v", it, pos, err)
		}
	}

	log.Info("мир %v сгенерирован: сид %d, поверхность %d кубиков", size, wg.Seed, len(surface))
	return surface
}

// heightAt возвращает число твёрдых кубиков в колонне (x, y)
func (wg *WorldGenerator) heightAt(x, y, sizeZ int) int {
	if wg.noise == nil || wg.noise.Seed() != wg.Seed {
		wg.noise = util.NewPerlinNoise(wg.Seed)
	}
	h := wg.noise.Noise2D(float64(x)*wg.NoiseScale, float64(y)*wg.NoiseScale)
	level := GroundMin + h*(GroundMax-GroundMin)
	return int(level * float64(sizeZ))
}
