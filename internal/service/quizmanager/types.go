package quizmanager

import (
	"fmt"

	"github.com/yourusername/quiz-pwa/internal/domain/entity"
	"github.com/yourusername/quiz-pwa/internal/domain/repository"
)

// Стратегии выбора следующего вопроса
const (
	// StrategyWeighted — взвешенный случайный выбор с исключением недавних вопросов
	StrategyWeighted = "weighted"
	// StrategyWrongFirst — сначала неотвеченные, затем вопрос с наибольшим числом ошибок
	StrategyWrongFirst = "wrong_first"
)

// Config содержит настройки выбора вопросов
type Config struct {
	// Strategy — стратегия выбора (weighted по умолчанию)
	Strategy string
	// RecentLimit — сколько последних вопросов исключается из взвешенного выбора
	RecentLimit int
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		Strategy:    StrategyWeighted,
		RecentLimit: entity.DefaultRecentLimit,
	}
}

// Validate проверяет корректность настроек
func (c *Config) Validate() error {
	switch c.Strategy {
	case StrategyWeighted, StrategyWrongFirst:
	default:
		return fmt.Errorf("unsupported selector strategy: %q", c.Strategy)
	}
	if c.RecentLimit < 0 {
		return fmt.Errorf("recent limit must be non-negative, got %d", c.RecentLimit)
	}
	return nil
}

// QuestionSelector выбирает следующий вопрос по каталогу и снимку истории.
// Возвращает нормализованную копию вопроса или nil для пустого каталога.
type QuestionSelector interface {
	SelectNextQuestion(questions []entity.Question, history entity.HistoryMap) *entity.Question
	Strategy() string
}

// RandomSource — источник случайных чисел; *rand.Rand ему удовлетворяет
type RandomSource interface {
	// Float64 возвращает число в [0, 1)
	Float64() float64
	// Intn возвращает число в [0, n)
	Intn(n int) int
}

// Dependencies содержит зависимости селектора
type Dependencies struct {
	// Store — хранилище клиента, в нём живёт список недавних вопросов
	Store  repository.KeyValueStore
	Random RandomSource
}

// NewSelector создает селектор по конфигурации
func NewSelector(config *Config, deps *Dependencies) (QuestionSelector, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if deps == nil || deps.Random == nil {
		return nil, fmt.Errorf("random source is required for selector")
	}

	switch config.Strategy {
	case StrategyWrongFirst:
		return NewWrongFirstSelector(deps.Random), nil
	default:
		if deps.Store == nil {
			return nil, fmt.Errorf("store is required for %s selector", StrategyWeighted)
		}
		return NewWeightedSelector(NewRecentTracker(deps.Store, config.RecentLimit), deps.Random), nil
	}
}
