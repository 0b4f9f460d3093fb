package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/volunteerhub/volunteer-server/internal/tokens"
	"github.com/volunteerhub/volunteer-server/internal/volunteer"
	"github.com/volunteerhub/volunteer-server/internal/volunteer/service"
)

func TestWriteToken(t *testing.T) {
	codec := tokens.NewCodec("secret", time.Hour)
	var buf bytes.Buffer
	require.NoError(t, writeToken(&buf, codec, "a@x.com"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	id, err := codec.Verify(lines[0])
	require.NoError(t, err)
	require.Equal(t, "a@x.com", id.Email)
	require.True(t, strings.HasPrefix(lines[1], "expires: "))

	require.Error(t, writeToken(&buf, codec, ""))
}

func TestSeedOpportunities(t *testing.T) {
	ctx := context.Background()
	svc := service.NewMemoryService()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	n, err := seedOpportunities(ctx, svc, "org@x.com", now)
	require.NoError(t, err)
	require.Equal(t, len(sampleOpportunities), n)

	mine, err := svc.OpportunitiesByOwner(ctx, "org@x.com")
	require.NoError(t, err)
	require.Len(t, mine, n)

	all, err := svc.ListOpportunities(ctx)
	require.NoError(t, err)
	require.Equal(t, "Tree Planting Day", all[0].Title())
	require.Equal(t, "2025-02-15", all[0].String(volunteer.FieldDeadline))
}
