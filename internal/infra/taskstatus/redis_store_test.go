package taskstatus

import (
	"encoding/json"
	"testing"

	"github.com/Altair788/no-more-procrastination/internal/domain/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchStateDocument(t *testing.T) {
	payload, err := dispatchStateDocument(notification.DispatchProgress{
		Current: 3,
		Total:   10,
		Status:  "Обработана привычка 3 из 10",
	})
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &doc))
	assert.JSONEq(t, `"PROGRESS"`, string(doc["state"]))
	assert.JSONEq(t, `{"current":3,"total":10,"status":"Обработана привычка 3 из 10"}`, string(doc["meta"]))
}

func TestDeliveryStateDocument(t *testing.T) {
	payload, err := deliveryStateDocument("Отправка сообщения")
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &doc))
	assert.JSONEq(t, `{"status":"Отправка сообщения"}`, string(doc["meta"]))
}
