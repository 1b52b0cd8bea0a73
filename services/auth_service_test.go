package services

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestUserIndexModelsEnforceUniqueEmail(t *testing.T) {
	models := userIndexModels()
	if len(models) == 0 {
		t.Fatal("no user indexes declared")
	}

	found := false
	for _, model := range models {
		keys, ok := model.Keys.(bson.D)
		if !ok || len(keys) == 0 || keys[0].Key != "email" {
			continue
		}
		found = true
		if model.Options == nil || model.Options.Unique == nil || !*model.Options.Unique {
			t.Error("email index is not declared unique")
		}
	}

	if !found {
		t.Error("no index on email declared")
	}
}
