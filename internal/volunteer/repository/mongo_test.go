package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/volunteerhub/volunteer-server/internal/volunteer"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFindOptions_SortAndPage(t *testing.T) {
	opts := volunteer.Paginate(volunteer.Page{Number: 3, Size: 5})
	opts.Sort = volunteer.ByDeadlineDesc

	fo := FindOptions(opts)
	require.Equal(t, bson.D{{Key: "deadline", Value: -1}}, fo.Sort)
	require.NotNil(t, fo.Skip)
	require.EqualValues(t, 10, *fo.Skip)
	require.NotNil(t, fo.Limit)
	require.EqualValues(t, 5, *fo.Limit)
}

func TestFindOptions_Unbounded(t *testing.T) {
	fo := FindOptions(volunteer.FindOptions{})
	require.Nil(t, fo.Sort)
	require.Nil(t, fo.Skip)
	require.Nil(t, fo.Limit)
}

func TestIDString(t *testing.T) {
	oid := primitive.NewObjectID()
	require.Equal(t, oid.Hex(), idString(oid))
	require.Equal(t, "custom", idString("custom"))
}
