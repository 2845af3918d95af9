package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pass-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-vault/internal/clipboard"
	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/mock"
	"github.com/MKhiriev/go-pass-vault/models"
)

const testClearAfter = 15 * time.Second

func newTestClientVaultSvc(ctrl *gomock.Controller) (ClientVaultService, *mock.MockServerAdapter, *mock.MockClipboardManager) {
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockClipboard := mock.NewMockClipboardManager(ctrl)

	return NewClientVaultService(mockAdapter, mockClipboard, testClearAfter, logger.Nop()), mockAdapter, mockClipboard
}

func closedChan() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// ── RevealForDisplay ────────────────────────────────────────────────────────

func TestClientVaultService_RevealForDisplay(t *testing.T) {
	tests := []struct {
		name       string
		adapterErr error
		secret     string
		want       string
		wantErr    error
	}{
		{name: "plaintext", secret: "hunter2", want: "hunter2"},
		{name: "undecryptable is masked", adapterErr: adapter.ErrUnableToDecrypt, want: MaskedSecret, wantErr: ErrUnableToDecrypt},
		{name: "not found is masked", adapterErr: adapter.ErrNotFound, want: MaskedSecret, wantErr: adapter.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, mockAdapter, _ := newTestClientVaultSvc(ctrl)
			mockAdapter.EXPECT().Reveal(gomock.Any(), testRecordID).Return(tt.secret, tt.adapterErr)

			got, err := svc.RevealForDisplay(context.Background(), testRecordID)
			assert.Equal(t, tt.want, got)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

// ── Copy ────────────────────────────────────────────────────────────────────

func TestClientVaultService_Copy_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, mockClipboard := newTestClientVaultSvc(ctrl)

	gomock.InOrder(
		mockAdapter.EXPECT().Reveal(gomock.Any(), testRecordID).Return("hunter2", nil),
		mockClipboard.EXPECT().Copy("hunter2", testClearAfter).Return(closedChan(), nil),
	)

	done, err := svc.Copy(context.Background(), testRecordID)
	require.NoError(t, err)

	select {
	case <-done:
	default:
		t.Fatal("expected the exposure channel from the clipboard manager")
	}
}

func TestClientVaultService_Copy_RevealFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, _ := newTestClientVaultSvc(ctrl)

	mockAdapter.EXPECT().Reveal(gomock.Any(), testRecordID).Return("", adapter.ErrUnableToDecrypt)

	done, err := svc.Copy(context.Background(), testRecordID)
	require.ErrorIs(t, err, ErrUnableToDecrypt)
	assert.Nil(t, done)
}

func TestClientVaultService_Copy_ClipboardFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, mockClipboard := newTestClientVaultSvc(ctrl)

	mockAdapter.EXPECT().Reveal(gomock.Any(), testRecordID).Return("hunter2", nil)
	mockClipboard.EXPECT().Copy("hunter2", testClearAfter).Return(nil, clipboard.ErrClipboardUnavailable)

	_, err := svc.Copy(context.Background(), testRecordID)
	require.ErrorIs(t, err, ErrClipboardFailed)
	require.ErrorIs(t, err, clipboard.ErrClipboardUnavailable)
}

func TestClientVaultService_CopyText_RealManager(t *testing.T) {
	w := &recordingWriter{}
	manager := clipboard.NewManager(w, logger.Nop())
	svc := NewClientVaultService(nil, manager, 20*time.Millisecond, logger.Nop())

	done, err := svc.CopyText("generated-secret")
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("clipboard was not cleared")
	}
	require.Eventually(t, func() bool {
		return assert.ObjectsAreEqual([]string{"generated-secret", ""}, w.snapshot())
	}, time.Second, 5*time.Millisecond)
}

type recordingWriter struct {
	mu     sync.Mutex
	writes []string
}

func (w *recordingWriter) WriteAll(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writes = append(w.writes, text)
	return nil
}

func (w *recordingWriter) snapshot() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.writes...)
}

// ── Forwarding ──────────────────────────────────────────────────────────────

func TestClientVaultService_Forwards(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, _ := newTestClientVaultSvc(ctrl)
	ctx := context.Background()

	draft := models.RecordDraft{Title: "GitHub", Secret: "hunter2"}
	policy := models.GenerationPolicy{Length: 12, IncludeNumbers: true}

	mockAdapter.EXPECT().Generate(ctx, policy).Return(models.GenerateResponse{Secret: "123456789012", Length: 12}, nil)
	mockAdapter.EXPECT().Create(ctx, draft).Return(models.VaultRecord{ID: testRecordID, Title: "GitHub"}, nil)
	mockAdapter.EXPECT().List(ctx, models.ListQuery{Filter: "git"}).Return([]models.VaultRecord{{ID: testRecordID}}, nil)
	mockAdapter.EXPECT().Update(ctx, testRecordID, draft).Return(models.VaultRecord{ID: testRecordID}, nil)
	mockAdapter.EXPECT().Delete(ctx, testRecordID).Return(nil)
	mockAdapter.EXPECT().Export(ctx).Return(models.ExportResponse{Records: 1}, nil)
	mockAdapter.EXPECT().Version(ctx).Return(models.AppBuildInfo{Version: "1.0.0"}, nil)

	gen, err := svc.Generate(ctx, policy)
	require.NoError(t, err)
	assert.Equal(t, "123456789012", gen.Secret)

	record, err := svc.Add(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, testRecordID, record.ID)

	records, err := svc.List(ctx, models.ListQuery{Filter: "git"})
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = svc.Update(ctx, testRecordID, draft)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, testRecordID))

	export, err := svc.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, export.Records)

	info, err := svc.ServerVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", info.Version)
}

func TestClientVaultService_ForwardsErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, _ := newTestClientVaultSvc(ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Generate(ctx, gomock.Any()).Return(models.GenerateResponse{}, adapter.ErrBadRequest)
	mockAdapter.EXPECT().Delete(ctx, testRecordID).Return(adapter.ErrNotFound)
	mockAdapter.EXPECT().Export(ctx).Return(models.ExportResponse{}, adapter.ErrServiceUnavailable)

	_, err := svc.Generate(ctx, models.GenerationPolicy{})
	require.ErrorIs(t, err, adapter.ErrBadRequest)

	require.ErrorIs(t, svc.Delete(ctx, testRecordID), adapter.ErrNotFound)

	_, err = svc.Export(ctx)
	require.ErrorIs(t, err, adapter.ErrServiceUnavailable)
}

// ── ClientServices ──────────────────────────────────────────────────────────

func TestNewClientServices(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := config.ClientConfig{
		App: config.ClientApp{
			TokenSignKey:  "test-sign-key",
			TokenIssuer:   "go-pass-vault",
			TokenDuration: time.Hour,
		},
		Clipboard: config.ClientClipboard{ClearAfter: time.Second},
	}

	services := NewClientServices(mock.NewMockServerAdapter(ctrl), mock.NewMockClipboardManager(ctrl), cfg, logger.Nop())
	require.NotNil(t, services.VaultService)

	token, err := services.AuthService.CreateToken(context.Background(), testOwner)
	require.NoError(t, err)
	assert.NotEmpty(t, token.SignedString)
}
