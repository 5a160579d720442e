package validation

import (
	"context"
	"sync"

	"noteful-api/internal/apperrors"

	"github.com/google/uuid"
)

// FolderChecker resolves a folder reference in a single
// existence-plus-ownership lookup.
type FolderChecker interface {
	FolderOwned(ctx context.Context, folderID, userID string) (bool, error)
}

// TagChecker counts how many of the given tag ids exist AND belong to
// the user. A shortfall covers both "does not exist" and "belongs to
// another user"; callers cannot tell them apart.
type TagChecker interface {
	OwnedTagCount(ctx context.Context, tagIDs []string, userID string) (int, error)
}

// CheckFolderReference succeeds trivially when the reference is
// absent; the folder is optional on a note.
func CheckFolderReference(ctx context.Context, store FolderChecker, folderID *string, userID string) error {
	if folderID == nil || *folderID == "" {
		return nil
	}
	if _, err := uuid.Parse(*folderID); err != nil {
		return apperrors.MalformedID("folderId")
	}

	owned, err := store.FolderOwned(ctx, *folderID, userID)
	if err != nil {
		return apperrors.Storage(err)
	}
	if !owned {
		return apperrors.UnknownFolder()
	}
	return nil
}

// CheckTagReferences validates the dynamically typed tags payload and
// returns the distinct, normalized tag ids. A malformed or non-string
// entry can never match a stored tag, so it reports the same error as
// a foreign id.
func CheckTagReferences(ctx context.Context, store TagChecker, tags any, userID string) ([]string, error) {
	if tags == nil {
		return nil, nil
	}
	raw, ok := tags.([]any)
	if !ok {
		return nil, apperrors.NotASequence()
	}

	seen := make(map[string]struct{}, len(raw))
	ids := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, apperrors.UnknownTag()
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if _, err := uuid.Parse(s); err != nil {
			return nil, apperrors.UnknownTag()
		}
		ids = append(ids, s)
	}

	if len(ids) == 0 {
		return ids, nil
	}

	count, err := store.OwnedTagCount(ctx, ids, userID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if count != len(ids) {
		return nil, apperrors.UnknownTag()
	}
	return ids, nil
}

// CheckReferences runs the folder and tag checks concurrently; there
// is no ordering dependency between them. Persistence must not
// proceed unless both succeed. When both fail, the folder error wins
// the tie so the reported failure is deterministic.
func CheckReferences(ctx context.Context, folders FolderChecker, tags TagChecker, folderID *string, tagRefs any, userID string) ([]string, error) {
	var (
		wg        sync.WaitGroup
		folderErr error
		tagIDs    []string
		tagErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		folderErr = CheckFolderReference(ctx, folders, folderID, userID)
	}()
	go func() {
		defer wg.Done()
		tagIDs, tagErr = CheckTagReferences(ctx, tags, tagRefs, userID)
	}()
	wg.Wait()

	if folderErr != nil {
		return nil, folderErr
	}
	if tagErr != nil {
		return nil, tagErr
	}
	return tagIDs, nil
}
