package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/auth"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/data"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/iocli"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/storage"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/syncqueue"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

var fixedNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

// testIO собирает весь вывод в буфер
func testIO(out *bytes.Buffer, inputs ...string) *iocli.IOMock {
	return &iocli.IOMock{
		PrintlnFunc: func(a ...any) { _, _ = fmt.Fprintln(out, a...) },
		PrintfFunc:  func(format string, a ...any) { _, _ = fmt.Fprintf(out, format, a...) },
		WriteFunc:   out.Write,
		ReadInputFunc: func(prompt string) (string, error) {
			if len(inputs) == 0 {
				return "", errors.New("no input")
			}
			v := inputs[0]
			inputs = inputs[1:]
			return v, nil
		},
		ReadPasswordFunc: func(prompt string) (string, error) {
			return "secret-pass", nil
		},
	}
}

func emptyQueue() *SyncQueueMock {
	return &SyncQueueMock{
		GetSyncStatusFunc: func() syncqueue.SyncStatus { return syncqueue.SyncStatus{Online: true} },
	}
}

func newTestCli(out *bytes.Buffer, d Deps) *Cli {
	if d.IO == nil {
		d.IO = testIO(out)
	}
	if d.Queue == nil {
		d.Queue = emptyQueue()
	}
	if d.Now == nil {
		d.Now = func() time.Time { return fixedNow }
	}
	return New(d)
}

func TestCli_runLogin_PromptsForMissingCredentials(t *testing.T) {
	var out bytes.Buffer
	authMock := &auth.ServiceMock{
		LoginFunc: func(ctx context.Context, username, password string) (*storage.AuthData, error) {
			return &storage.AuthData{Username: username, Role: models.RoleFrontdesk, ExpiresAt: fixedNow.Add(time.Hour).Unix()}, nil
		},
	}
	io := testIO(&out, "frontdesk")
	c := newTestCli(&out, Deps{IO: io, Auth: authMock})

	require.NoError(t, c.runLogin(context.Background(), LoginOptions{}))

	require.Len(t, authMock.LoginCalls(), 1)
	assert.Equal(t, "frontdesk", authMock.LoginCalls()[0].Username)
	assert.Equal(t, "secret-pass", authMock.LoginCalls()[0].Password)
	assert.Len(t, io.ReadPasswordCalls(), 1)
	assert.Contains(t, out.String(), "Login successful")
	assert.Contains(t, out.String(), "Role: frontdesk")
}

func TestCli_runLogin_UsesFlags(t *testing.T) {
	var out bytes.Buffer
	authMock := &auth.ServiceMock{
		LoginFunc: func(ctx context.Context, username, password string) (*storage.AuthData, error) {
			return nil, errors.New("invalid credentials")
		},
	}
	io := testIO(&out)
	c := newTestCli(&out, Deps{IO: io, Auth: authMock})

	err := c.runLogin(context.Background(), LoginOptions{Username: "admin", Password: "password1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	assert.Empty(t, io.ReadInputCalls())
	assert.Empty(t, io.ReadPasswordCalls())
}

func TestCli_runLogout_WarnsAboutQueuedOperations(t *testing.T) {
	var out bytes.Buffer
	authMock := &auth.ServiceMock{LogoutFunc: func(ctx context.Context) error { return nil }}
	queue := &SyncQueueMock{
		GetSyncStatusFunc: func() syncqueue.SyncStatus { return syncqueue.SyncStatus{Pending: 2, Retrying: 1} },
	}
	c := newTestCli(&out, Deps{Auth: authMock, Queue: queue})

	require.NoError(t, c.runLogout(context.Background()))
	assert.Contains(t, out.String(), "3 operation(s) are still waiting")
	assert.Contains(t, out.String(), "Logout successful")
	assert.Len(t, authMock.LogoutCalls(), 1)
}

func TestCli_runStatus(t *testing.T) {
	tests := []struct {
		name     string
		authed   bool
		status   syncqueue.SyncStatus
		online   bool
		contains []string
	}{
		{
			name:     "not authenticated and synced",
			online:   true,
			contains: []string{"Network: online", "Not authenticated", "All changes synchronized"},
		},
		{
			name:     "paused until login",
			status:   syncqueue.SyncStatus{Pending: 3, AwaitingLogin: true},
			contains: []string{"Not authenticated", "Pending sync: 3", "paused until you log in"},
		},
		{
			name:     "authenticated with backlog",
			authed:   true,
			status:   syncqueue.SyncStatus{Pending: 1, Failed: 2},
			contains: []string{"Network: offline", "Session: frontdesk", "1h0m0s left", "Pending sync: 1", "Failed: 2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			authMock := &auth.ServiceMock{
				IsAuthenticatedFunc: func(ctx context.Context) (bool, error) { return tt.authed, nil },
				SessionFunc: func(ctx context.Context) (*storage.AuthData, error) {
					return &storage.AuthData{Username: "frontdesk", ExpiresAt: fixedNow.Add(time.Hour).Unix()}, nil
				},
			}
			queue := &SyncQueueMock{GetSyncStatusFunc: func() syncqueue.SyncStatus { return tt.status }}
			c := newTestCli(&out, Deps{Auth: authMock, Queue: queue, Online: func() bool { return tt.online }})

			require.NoError(t, c.runStatus(context.Background()))
			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestCli_runSyncForce(t *testing.T) {
	t.Run("offline", func(t *testing.T) {
		var out bytes.Buffer
		queue := emptyQueue()
		queue.ForceSyncAllFunc = func(ctx context.Context) error { return syncqueue.ErrOffline }
		c := newTestCli(&out, Deps{Queue: queue})

		err := c.runSyncForce(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, syncqueue.ErrOffline)
		assert.Contains(t, err.Error(), "changes stay queued")
	})

	t.Run("paused until login", func(t *testing.T) {
		var out bytes.Buffer
		queue := emptyQueue()
		queue.ForceSyncAllFunc = func(ctx context.Context) error { return syncqueue.ErrNotAuthenticated }
		c := newTestCli(&out, Deps{Queue: queue})

		err := c.runSyncForce(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, syncqueue.ErrNotAuthenticated)
		assert.Contains(t, err.Error(), "log in to send queued changes")
	})

	t.Run("success", func(t *testing.T) {
		var out bytes.Buffer
		queue := emptyQueue()
		queue.ForceSyncAllFunc = func(ctx context.Context) error { return nil }
		c := newTestCli(&out, Deps{Queue: queue})

		require.NoError(t, c.runSyncForce(context.Background()))
		assert.Contains(t, out.String(), "Synchronization completed successfully")
	})

	t.Run("failures remain", func(t *testing.T) {
		var out bytes.Buffer
		queue := &SyncQueueMock{
			ForceSyncAllFunc:  func(ctx context.Context) error { return nil },
			GetSyncStatusFunc: func() syncqueue.SyncStatus { return syncqueue.SyncStatus{Failed: 1} },
		}
		c := newTestCli(&out, Deps{Queue: queue})

		require.NoError(t, c.runSyncForce(context.Background()))
		assert.Contains(t, out.String(), "Remaining: 0 pending, 0 retrying, 1 failed")
	})
}

func TestCli_runSyncStatus(t *testing.T) {
	var out bytes.Buffer
	queue := &SyncQueueMock{
		GetSyncStatusFunc: func() syncqueue.SyncStatus {
			return syncqueue.SyncStatus{
				Retrying: 1,
				Operations: []models.OperationSummary{{
					ID:         "op-1",
					Type:       models.OperationCreateOrder,
					Status:     models.OperationRetrying,
					RetryCount: 2,
					LastError:  "server error (502)",
					Timestamp:  fixedNow,
				}},
			}
		},
	}
	c := newTestCli(&out, Deps{Queue: queue})

	require.NoError(t, c.runSyncStatus(context.Background()))
	assert.Contains(t, out.String(), "Retrying:    1")
	assert.Contains(t, out.String(), "LAST ERROR")
	assert.Contains(t, out.String(), "op-1")
	assert.Contains(t, out.String(), "create_order")
	assert.Contains(t, out.String(), "server error (502)")
}

func TestCli_runSyncStatus_JSON(t *testing.T) {
	var out bytes.Buffer
	c := newTestCli(&out, Deps{})
	c.SetJSON(true)

	require.NoError(t, c.runSyncStatus(context.Background()))
	assert.JSONEq(t, `{"operations":null,"pending":0,"queued":0,"retrying":0,"failed":0,"in_progress":false,"online":true,"awaiting_login":false}`, out.String())
}

func TestCli_runSyncCancel(t *testing.T) {
	var out bytes.Buffer
	queue := emptyQueue()
	queue.CancelOperationFunc = func(id string) bool { return id == "op-1" }
	c := newTestCli(&out, Deps{Queue: queue})

	require.NoError(t, c.runSyncCancel(context.Background(), "op-1"))
	assert.Contains(t, out.String(), "Operation op-1 cancelled")
	assert.Error(t, c.runSyncCancel(context.Background(), "missing"))
}

func TestCli_runProfileShow_NoProfile(t *testing.T) {
	var out bytes.Buffer
	dataMock := &data.ServiceMock{
		GetProfileFunc: func(ctx context.Context) (*data.LocalProfile, error) {
			return nil, fmt.Errorf("no local profile: %w", storage.ErrRecordNotFound)
		},
	}
	c := newTestCli(&out, Deps{Data: dataMock})

	require.NoError(t, c.runProfileShow(context.Background()))
	assert.Contains(t, out.String(), "No local profile yet")
}

func TestCli_runProfileUpdate(t *testing.T) {
	var out bytes.Buffer
	dataMock := &data.ServiceMock{
		UpdateProfileFunc: func(ctx context.Context, profile models.Profile) (*data.LocalProfile, error) {
			return &data.LocalProfile{Profile: profile, SyncStatus: models.RecordPendingSync}, nil
		},
	}
	c := newTestCli(&out, Deps{Data: dataMock})

	require.NoError(t, c.runProfileUpdate(context.Background(), models.Profile{Email: "ama@example.com"}))
	assert.Equal(t, "ama@example.com", dataMock.UpdateProfileCalls()[0].Profile.Email)
	assert.Contains(t, out.String(), "Profile saved locally (pending_sync)")
}

func TestCli_runPayment(t *testing.T) {
	var out bytes.Buffer
	dataMock := &data.ServiceMock{
		RecordPaymentFunc: func(ctx context.Context, payment models.Payment) (string, error) {
			return "0c7f6a52-5b4e-4b8e-8f7a-3d1e2f9a0b11", nil
		},
	}
	c := newTestCli(&out, Deps{Data: dataMock})

	err := c.runPayment(context.Background(), models.Payment{OrderNumber: "ORD-7", Amount: 50, PaymentMethod: "cash"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Payment of 50.00 for order ORD-7 queued (operation 0c7f6a52-5b4)")
}

func TestCli_runSyncStatus_AwaitingLogin(t *testing.T) {
	var out bytes.Buffer
	queue := &SyncQueueMock{
		GetSyncStatusFunc: func() syncqueue.SyncStatus {
			return syncqueue.SyncStatus{Pending: 1, AwaitingLogin: true}
		},
	}
	c := newTestCli(&out, Deps{Queue: queue})

	require.NoError(t, c.runSyncStatus(context.Background()))
	assert.Contains(t, out.String(), "Sync is paused until you log in")
}
