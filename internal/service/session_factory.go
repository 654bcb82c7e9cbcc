package service

import (
	"fmt"

	"github.com/yourusername/quiz-pwa/internal/domain/repository"
	"github.com/yourusername/quiz-pwa/internal/service/quizmanager"
)

// SessionFactory создаёт сервисы, привязанные к пространству ключей конкретного клиента.
// Каждый клиент получает собственные quiz_history и recentQuestions.
type SessionFactory struct {
	questionRepo repository.QuestionRepository
	store        repository.KeyValueStore
	keyPrefix    string
	config       *quizmanager.Config
	rnd          quizmanager.RandomSource
}

// NewSessionFactory создает фабрику
func NewSessionFactory(
	questionRepo repository.QuestionRepository,
	store repository.KeyValueStore,
	keyPrefix string,
	config *quizmanager.Config,
	rnd quizmanager.RandomSource,
) *SessionFactory {
	if config == nil {
		config = quizmanager.DefaultConfig()
	}
	return &SessionFactory{
		questionRepo: questionRepo,
		store:        store,
		keyPrefix:    keyPrefix,
		config:       config,
		rnd:          rnd,
	}
}

// ClientKeyPrefix возвращает префикс ключей клиента
func (f *SessionFactory) ClientKeyPrefix(clientID string) string {
	return fmt.Sprintf("%sclient:%s:", f.keyPrefix, clientID)
}

// ForClient возвращает сервис вопросов поверх хранилища клиента
func (f *SessionFactory) ForClient(clientID string) (*QuestionService, error) {
	if clientID == "" {
		return nil, fmt.Errorf("client id is required")
	}
	scoped := repository.NewScopedStore(f.store, f.ClientKeyPrefix(clientID))
	return NewQuestionService(f.questionRepo, scoped, f.config, f.rnd)
}

// Strategy возвращает активную стратегию выбора
func (f *SessionFactory) Strategy() string {
	return f.config.Strategy
}
