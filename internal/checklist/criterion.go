package checklist

import "strings"

// CriterionID identifies one checklist item. Values are stable and are
// persisted in history records, so an ID is never reused for different
// semantics.
type CriterionID string

// EAC criteria in checklist order.
const (
	InsecureReadMode       CriterionID = "insecure-read-mode"
	AudioCacheNotDefeated  CriterionID = "audio-cache-not-defeated"
	C2PointersUsed         CriterionID = "c2-pointers-used"
	OffsetSamplesNotFilled CriterionID = "offset-samples-not-filled"
	SilentBlocksDeleted    CriterionID = "silent-blocks-deleted"
	NullSamplesNotUsed     CriterionID = "null-samples-not-used"
	GapHandling            CriterionID = "gap-handling"
	ID3TagsAdded           CriterionID = "id3-tags-added"
	CRCMismatch            CriterionID = "crc-mismatch"
	TestAndCopyNotUsed     CriterionID = "test-and-copy-not-used"
)

var criterionDescriptions = map[CriterionID]string{
	InsecureReadMode:       "Read mode is not secure",
	AudioCacheNotDefeated:  "Audio cache was not defeated",
	C2PointersUsed:         "C2 pointers were used",
	OffsetSamplesNotFilled: "Missing offset samples were not filled with silence",
	SilentBlocksDeleted:    "Leading and trailing silent blocks were deleted",
	NullSamplesNotUsed:     "Null samples were not used in CRC calculations",
	GapHandling:            "Gap handling was not detected or used the wrong mode",
	ID3TagsAdded:           "ID3 tags were added",
	CRCMismatch:            "Test and copy CRCs do not match",
	TestAndCopyNotUsed:     "Test and copy was not used",
}

// ParseCriterionID normalizes user input (flags, config keys) into a
// CriterionID. Matching is case-insensitive and accepts underscores.
func ParseCriterionID(value string) CriterionID {
	value = strings.ToLower(strings.TrimSpace(value))
	return CriterionID(strings.ReplaceAll(value, "_", "-"))
}

// Description returns the human-readable failure reason for a criterion.
// Unknown criteria describe themselves by ID.
func (c CriterionID) Description() string {
	if desc, ok := criterionDescriptions[c]; ok {
		return desc
	}
	return string(c)
}

func (c CriterionID) String() string {
	return string(c)
}
