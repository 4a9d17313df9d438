package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldCommand  = "command"
	FieldClub     = "club_id"
	FieldClubName = "club_name"
	FieldProfile  = "watch_profile"
	FieldProvider = "ai_provider"
	FieldModel    = "ai_model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts key/value pairs into zap fields, trimming whitespace
// and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to the logger, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

func AIFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

func WithAIFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, AIFields(provider, model)...)
}

// ClubFields describes the club a command scores against.
func ClubFields(id, name string) []zap.Field {
	return StringFields(
		StringField{Key: FieldClub, Value: id},
		StringField{Key: FieldClubName, Value: name},
	)
}

func WithCommand(logger *zap.Logger, command string) *zap.Logger {
	return WithFields(logger, StringFields(StringField{Key: FieldCommand, Value: command})...)
}
