package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestRemoteReadError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := &RemoteReadError{Kind: ReadFailureNetwork, Database: "channels", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("RemoteReadError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "transient-network") {
		t.Errorf("Error() = %q, want failure kind in message", err.Error())
	}
}

func TestRemoteReadError_StatusInMessage(t *testing.T) {
	t.Parallel()

	err := &RemoteReadError{
		Kind:     ReadFailureServer,
		Database: "people",
		Status:   503,
		Err:      errors.New("service unavailable"),
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("Error() = %q, want status in message", err.Error())
	}
}

func TestDeliveryError_BothAttemptsInMessage(t *testing.T) {
	t.Parallel()

	second := errors.New("chat not found")
	err := &DeliveryError{
		ChannelID: "123456",
		First:     errors.New("bad request"),
		Second:    second,
	}

	if !errors.Is(err, second) {
		t.Error("DeliveryError should unwrap to the second attempt's error")
	}
	for _, want := range []string{"123456", "bad request", "chat not found"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Error() = %q, want %q in message", err.Error(), want)
		}
	}
}
