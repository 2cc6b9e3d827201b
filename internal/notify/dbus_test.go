//go:build linux

package notify

import (
	"os"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHints(t *testing.T) {
	h := hints(Notification{Urgency: UrgencyCritical, Category: CategoryError})

	assert.Equal(t, dbus.MakeVariant(byte(2)), h["urgency"])
	assert.Equal(t, dbus.MakeVariant(AppName), h["desktop-entry"])
	assert.Equal(t, dbus.MakeVariant(CategoryError), h["category"])

	_, ok := hints(Notification{})["category"]
	assert.False(t, ok, "empty category is omitted")
}

func TestDBusNotifier_ReplacesBubble(t *testing.T) {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}

	n, err := New()
	require.NoError(t, err)

	id, err := n.Notify(Notification{Summary: "#a1", Body: "Track 1 of 2", Timeout: 1000})
	require.NoError(t, err)
	require.NotZero(t, id)

	again, err := n.Notify(Notification{Summary: "#b2", Body: "Track 2 of 2", Timeout: 1000, ReplacesID: id})
	require.NoError(t, err)
	assert.Equal(t, id, again)

	assert.NoError(t, n.Close(again))
}
