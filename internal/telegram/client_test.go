package telegram

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_SendTimeoutAppliesToSends(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(200 * time.Millisecond):
		case <-r.Context().Done():
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewHTTPClient(time.Second, 20*time.Millisecond)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/botTOKEN/sendMessage", nil)
	require.NoError(t, err)
	_, err = c.Do(req)
	require.Error(t, err, "a send must not outlive the send timeout")

	req, err = http.NewRequest(http.MethodPost, srv.URL+"/botTOKEN/getUpdates", nil)
	require.NoError(t, err)
	resp, err := c.Do(req)
	require.NoError(t, err, "long polls use the poll timeout")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
