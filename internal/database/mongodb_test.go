package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClientOptions(t *testing.T) {
	opts := ClientOptions("mongodb://db.example:27017/?appName=volunteer")
	require.NoError(t, opts.Validate())
	require.Equal(t, []string{"db.example:27017"}, opts.Hosts)
	require.NotNil(t, opts.BSONOptions)
	require.True(t, opts.BSONOptions.DefaultDocumentM)
}

func TestConnectWithRetry_InvalidURI(t *testing.T) {
	start := time.Now()
	_, err := ConnectWithRetry(context.Background(), "not-a-uri", time.Second, 2, 10*time.Millisecond)
	require.Error(t, err)
	require.Contains(t, err.Error(), "after 2 attempts")
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestConnectWithRetry_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ConnectWithRetry(ctx, "not-a-uri", time.Second, 3, time.Second)
	require.ErrorIs(t, err, context.Canceled)
}
