package notify

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mjperez2704/deli-back-office/internal/domain"
)

func TestRoutingKey(t *testing.T) {
	n := domain.Notification{Type: domain.NotificationTypeDriverAssigned}
	require.Equal(t, "notify.driver_assigned", routingKey(n))
}

func TestMessageEncoding(t *testing.T) {
	n := domain.Notification{
		UserID:  7,
		OrderID: 12,
		Title:   "New delivery assigned",
		Message: "Order #12, pickup 1.2 km away",
		Type:    domain.NotificationTypeDriverAssigned,
	}

	body, err := json.Marshal(toMessage(n))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Equal(t, float64(7), decoded["user_id"])
	require.Equal(t, float64(12), decoded["order_id"])
	require.Equal(t, "driver_assigned", decoded["type"])
}

func TestMessageEncoding_OmitsZeroOrder(t *testing.T) {
	body, err := json.Marshal(toMessage(domain.Notification{UserID: 7, Type: "x"}))
	require.NoError(t, err)
	require.NotContains(t, string(body), "order_id")
}

func TestNopNotifier(t *testing.T) {
	require.NoError(t, NopNotifier{}.Notify(context.Background(), domain.Notification{}))
}
