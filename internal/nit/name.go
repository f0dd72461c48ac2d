package nit

import (
	"fmt"
	"regexp"
	"strings"
)

// namePattern: не короче двух символов, первая буква заглавная,
// далее буквы, пробелы, одинарные и двойные кавычки.
var namePattern = regexp.MustCompile(`^[A-Z][A-Za-z'" ]+$`)

// IsValidName проверяет имя нита
func IsValidName(name string) bool {
	return namePattern.MatchString(name)
}

func validateName(name string) error {
	if !IsValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

var (
	nameOnsets = []string{"b", "br", "d", "g", "gr", "k", "m", "n", "r", "t", "th", "v", "z"}
	nameVowels = []string{"a", "e", "i", "o", "u", "ae", "ou"}
	nameCodas  = []string{"", "", "n", "r", "s", "th", "k"}
)

// generateName собирает имя из 2–3 слогов
func generateName(rng Random) string {
	syllables := 2 + rng.Intn(2)

	var sb strings.Builder
	for i := 0; i < syllables; i++ {
		sb.WriteString(nameOnsets[rng.Intn(len(nameOnsets))])
		sb.WriteString(nameVowels[rng.Intn(len(nameVowels))])
	}
	sb.WriteString(nameCodas[rng.Intn(len(nameCodas))])

	name := sb.String()
	return strings.ToUpper(name[:1]) + name[1:]
}
