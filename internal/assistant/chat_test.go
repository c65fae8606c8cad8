package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/and161185/servicelog/internal/errs"
)

type stubCompleter struct {
	reply  string
	err    error
	calls  int
	system string
}

func (s *stubCompleter) Complete(_ context.Context, _ string, system string) (string, error) {
	s.calls++
	s.system = system
	return s.reply, s.err
}

func TestChat_Ask(t *testing.T) {
	tests := []struct {
		name    string
		stub    *stubCompleter
		prompt  string
		want    string
		wantErr bool
		calls   int
		msgs    int
	}{
		{"reply", &stubCompleter{reply: "Sprawdź ciśnienie."}, "Kocioł E01", "Sprawdź ciśnienie.", false, 1, 2},
		{"empty reply", &stubCompleter{reply: ""}, "?", EmptyReply, false, 1, 2},
		{"failure", &stubCompleter{err: errors.New("401")}, "?", FailureReply, true, 1, 2},
		{"blank prompt", &stubCompleter{reply: "x"}, "   ", "", false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChat(tt.stub, zaptest.NewLogger(t))
			got, err := c.Ask(context.Background(), tt.prompt)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrExternalService)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.calls, tt.stub.calls)

			tr := c.Transcript()
			require.Len(t, tr, tt.msgs)
			if tt.msgs == 2 {
				require.Equal(t, Message{Role: RoleUser, Text: tt.prompt}, tr[0])
				require.Equal(t, Message{Role: RoleAI, Text: tt.want}, tr[1])
				require.Equal(t, SystemInstruction, tt.stub.system)
			}
		})
	}
}
