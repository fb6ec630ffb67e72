// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/qwsnxnjene/cloud-storage/internal/platform/constants"
)

// RedisLoginThrottle implements [LoginThrottle] using Redis counters with TTL.
//
// # Key Shape
//
// One key per login name under [constants.RedisPrefixLoginAttempts]. The
// counter's TTL is armed by the first failure, so the window slides from the
// first failed attempt rather than the last.
type RedisLoginThrottle struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginThrottle creates a Redis-backed throttle with platform defaults.
func NewLoginThrottle(client *redis.Client) *RedisLoginThrottle {
	return &RedisLoginThrottle{
		client:      client,
		maxAttempts: constants.LoginThrottleMaxAttempts,
		window:      constants.LoginThrottleWindow,
	}
}

// TooMany reports whether the login name exceeded its failed-attempt budget.
func (throttle *RedisLoginThrottle) TooMany(ctx context.Context, login string) (bool, time.Duration, error) {
	key := constants.RedisPrefixLoginAttempts + login

	attempts, err := throttle.client.Get(ctx, key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, 0, nil
		}
		return false, 0, fmt.Errorf("redis_login_throttle_get_failed: %w", err)
	}

	if attempts < throttle.maxAttempts {
		return false, 0, nil
	}

	retryAfter, err := throttle.client.TTL(ctx, key).Result()
	if err != nil {
		return true, throttle.window, nil
	}

	return true, retryAfter, nil
}

// RecordFailure increments the failed-attempt counter for the login name.
func (throttle *RedisLoginThrottle) RecordFailure(ctx context.Context, login string) error {
	key := constants.RedisPrefixLoginAttempts + login

	attempts, err := throttle.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("redis_login_throttle_incr_failed: %w", err)
	}

	// Arm the window on the first failure only; later failures must not
	// extend it, otherwise a spray of attempts would lock the name forever.
	if attempts == 1 {
		if err := throttle.client.Expire(ctx, key, throttle.window).Err(); err != nil {
			return fmt.Errorf("redis_login_throttle_expire_failed: %w", err)
		}
	}

	return nil
}

// Reset clears the counter after a successful authentication.
func (throttle *RedisLoginThrottle) Reset(ctx context.Context, login string) error {
	key := constants.RedisPrefixLoginAttempts + login

	if err := throttle.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis_login_throttle_reset_failed: %w", err)
	}

	return nil
}
