package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/payroll_backend/config"
	"github.com/bsm/redislock"
	"github.com/shopspring/decimal"
)

// ExceedsTolerance reports whether |actual - expected| is strictly greater
// than tolerance. A difference of exactly the tolerance is not a discrepancy.
func ExceedsTolerance(expected, actual, tolerance decimal.Decimal) bool {
	return actual.Sub(expected).Abs().GreaterThan(tolerance)
}

func ParseDecimalFromString(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, errors.New("empty decimal string")
	}
	dec, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, err
	}
	return dec, nil
}

// StartOfDayUTC / EndOfDayUTC normalize period boundaries so that attendance
// dates on the period's last day are still inside the range.
func StartOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func EndOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, time.UTC)
}

// ObtainPeriodLock serializes reconciliation runs for a period across
// instances. It returns a release func. When the lock client is not
// initialized (single-instance deployments without Redis) it degrades to a
// no-op: the batch-insert transaction alone still guarantees all-or-nothing.
func ObtainPeriodLock(ctx context.Context, periodId int, moduleName string, functionName string) (func(), error) {
	logger := config.GetLogger()
	locker := config.GetRedisLock()
	if locker == nil {
		return func() {}, nil
	}

	lockKey := fmt.Sprintf("reconcile:%d", periodId)
	lock, err := locker.Obtain(ctx, lockKey, 30*time.Second, nil)
	if err == redislock.ErrNotObtained {
		config.LogError(logger, moduleName, functionName, "Could not obtain lock for period", periodId, err)
		return nil, errors.New("a reconciliation run is already in progress for this period")
	} else if err != nil {
		config.LogError(logger, moduleName, functionName, "Error obtaining lock for period", periodId, err)
		return nil, err
	}
	return func() {
		_ = lock.Release(ctx)
	}, nil
}
