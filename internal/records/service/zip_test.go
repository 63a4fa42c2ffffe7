package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"noticebase/internal/records/models"
	"noticebase/internal/records/store"
)

func TestResolveZipIsInsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	mem := store.NewInMemory()
	tx := NewInMemoryTx(mem)

	first := models.ZipCode{Kind: models.ZipKindViolation, Code: "10018", State: "NY", City: "NYC", District: "Manhattan"}
	second := models.ZipCode{Kind: models.ZipKindViolation, Code: "10018", State: "NJ", City: "Hoboken", District: "Hudson"}

	require.NoError(t, tx.RunInTx(ctx, func(st Store) error { return resolveZip(ctx, st, first) }))
	require.NoError(t, tx.RunInTx(ctx, func(st Store) error { return resolveZip(ctx, st, second) }))

	tables := mem.Dump()
	require.Len(t, tables.ViolationZips, 1)
	require.Equal(t, first, tables.ViolationZips["10018"])
	require.Empty(t, tables.RegZips, "violation zips never land in the registration table")
}
