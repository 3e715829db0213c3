package kafka_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mjperez2704/deli-back-office/internal/service/dispatch"
	"github.com/mjperez2704/deli-back-office/internal/transport/kafka"
)

func TestToDomain_TrimsAndCopiesFields(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	dto := kafka.EventDTO{
		OrderID:   7,
		Status:    "  delivery_failed  ",
		DriverID:  3,
		CreatedAt: ts,
	}

	got := kafka.ToDomain(dto)

	require.Equal(t, dispatch.Event{
		OrderID:   7,
		Status:    "delivery_failed",
		DriverID:  3,
		CreatedAt: ts,
	}, got)
}
