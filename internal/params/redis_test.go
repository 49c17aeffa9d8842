package params

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisStoreGet(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.HSet(defaultHashKey, KeyTrainingJobName, "xgb-train-7")

	s := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "")
	v, err := s.Get(context.Background(), KeyTrainingJobName)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != "xgb-train-7" {
		t.Fatalf("got %q", v)
	}

	_, err = s.Get(context.Background(), KeyTuningJobName)
	if !IsKeyNotFound(err) {
		t.Fatalf("expected key-not-found, got %v", err)
	}
}

func TestRedisStoreCustomHash(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.HSet("other:params", KeyBucket, "bkt")

	s := DialRedis(mr.Addr(), "other:params")
	v, err := s.Get(context.Background(), KeyBucket)
	if err != nil || v != "bkt" {
		t.Fatalf("got %q err=%v", v, err)
	}
}
