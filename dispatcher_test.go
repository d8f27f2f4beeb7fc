package exifmeta

import (
	"bytes"
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewDumpsEachFileInOrder(t *testing.T) {
	r := &fakeRunner{stdout: map[string]string{
		"a.jpg": "File Name : a.jpg\n",
		"b.jpg": "File Name : b.jpg\n",
	}}
	var out bytes.Buffer
	report := NewDispatcher(r, &out).View(context.Background(), []string{"a.jpg", "b.jpg"})

	assert.Equal(t, [][]string{{"a.jpg"}, {"b.jpg"}}, r.calls)
	assert.Equal(t, 0, report.Failed())
	assert.Equal(t, "Metadata for a.jpg:\nFile Name : a.jpg\nMetadata for b.jpg:\nFile Name : b.jpg\n", out.String())
}

func TestViewContinuesAfterFailure(t *testing.T) {
	r := &fakeRunner{fail: map[string]error{"a.jpg": errors.New(`exec: "exiftool": executable file not found in $PATH`)}}
	var out bytes.Buffer
	report := NewDispatcher(r, &out).View(context.Background(), []string{"a.jpg", "b.jpg"})

	assert.Len(t, r.calls, 2)
	assert.Equal(t, 1, report.Failed())
	assert.Contains(t, out.String(), "Error viewing metadata for a.jpg")
	assert.Contains(t, out.String(), "Metadata for b.jpg:")
}

func TestVerifyLabelsDump(t *testing.T) {
	r := &fakeRunner{stdout: map[string]string{"a.jpg": "Author : Jane\n"}}
	var out bytes.Buffer
	report := NewDispatcher(r, &out).Verify(context.Background(), []string{"a.jpg"})

	assert.Equal(t, [][]string{{"a.jpg"}}, r.calls)
	assert.Equal(t, 0, report.Failed())
	assert.Equal(t, "Verification of metadata for a.jpg:\nAuthor : Jane\n", out.String())
}

func TestViewWithFilter(t *testing.T) {
	r := &fakeRunner{stdout: map[string]string{
		"big.jpg":   "Image Width : 4000\n",
		"small.jpg": "Image Width : 640\n",
	}}
	var out bytes.Buffer
	d := NewDispatcher(r, &out, WithFilter("ImageWidth > 1000"))
	report := d.View(context.Background(), []string{"big.jpg", "small.jpg"})

	assert.Equal(t, 0, report.Failed())
	assert.Contains(t, out.String(), "Metadata for big.jpg:")
	assert.Contains(t, out.String(), "Skipped small.jpg: filter not matched")
}

func TestViewWithInvalidFilter(t *testing.T) {
	r := &fakeRunner{}
	var out bytes.Buffer
	report := NewDispatcher(r, &out, WithFilter("(ImageWidth > 1")).View(context.Background(), []string{"a.jpg"})

	assert.Equal(t, 1, report.Failed())
	assert.Contains(t, out.String(), "Error viewing metadata for a.jpg")
}

func TestAddAppliesEachFieldSeparately(t *testing.T) {
	r := &fakeRunner{}
	var out bytes.Buffer
	report := NewDispatcher(r, &out).Add(context.Background(), []string{"photo.jpg"}, DefaultFields(), []string{"Author=John Doe"})

	assert.Equal(t, [][]string{
		{"-Author=John Doe", "photo.jpg"},
		{"-Copyright=All rights reserved", "photo.jpg"},
	}, r.calls)
	assert.Equal(t, 0, report.Failed())
	assert.Contains(t, out.String(), "Added metadata: Author=John Doe\n")
	assert.Contains(t, out.String(), "Added metadata: Copyright=All rights reserved\n")
}

func TestAddExtraKeysFollowDefaults(t *testing.T) {
	r := &fakeRunner{}
	var out bytes.Buffer
	NewDispatcher(r, &out).Add(context.Background(), []string{"a.jpg", "b.jpg"}, DefaultFields(), []string{"Title=Sunset"})

	require.Len(t, r.calls, 6)
	assert.Equal(t, []string{"-Author=Unknown Author", "a.jpg"}, r.calls[0])
	assert.Equal(t, []string{"-Title=Sunset", "a.jpg"}, r.calls[2])
	assert.Equal(t, []string{"-Author=Unknown Author", "b.jpg"}, r.calls[3])
}

func TestAddMalformedEntryRunsNothing(t *testing.T) {
	r := &fakeRunner{}
	var out bytes.Buffer
	report := NewDispatcher(r, &out).Add(context.Background(), []string{"photo.jpg"}, DefaultFields(), []string{"Author:John"})

	assert.Empty(t, r.calls)
	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, "Invalid metadata format: Author:John. Use KEY=VALUE.\n", out.String())
}

func TestAddFailureSkipsToNextFile(t *testing.T) {
	r := &fakeRunner{fail: map[string]error{"a.jpg": errors.New("permission denied")}}
	var out bytes.Buffer
	report := NewDispatcher(r, &out).Add(context.Background(), []string{"a.jpg", "b.jpg"}, DefaultFields(), nil)

	// one attempt on a.jpg, both fields on b.jpg
	assert.Len(t, r.calls, 3)
	assert.Equal(t, 1, report.Failed())
	assert.Contains(t, out.String(), "Error adding metadata to a.jpg: permission denied")
}

func TestRemove(t *testing.T) {
	r := &fakeRunner{}
	var out bytes.Buffer
	report := NewDispatcher(r, &out).Remove(context.Background(), []string{"photo.jpg"}, []string{"Author"})

	assert.Equal(t, [][]string{{"-Author=", "photo.jpg"}}, r.calls)
	assert.Equal(t, 0, report.Failed())
	assert.Equal(t, "Removed metadata: Author\n", out.String())
}

func TestRemoveTwiceIssuesSameCommand(t *testing.T) {
	r := &fakeRunner{}
	d := NewDispatcher(r, &bytes.Buffer{})
	d.Remove(context.Background(), []string{"photo.jpg"}, []string{"Author"})
	d.Remove(context.Background(), []string{"photo.jpg"}, []string{"Author"})

	require.Len(t, r.calls, 2)
	assert.Equal(t, r.calls[0], r.calls[1])
}

func TestReplaceSkipsOnlyMalformedEntry(t *testing.T) {
	r := &fakeRunner{}
	var out bytes.Buffer
	report := NewDispatcher(r, &out).Replace(context.Background(), []string{"a.jpg", "b.jpg"}, []string{"Bad", "Title=New"})

	assert.Equal(t, [][]string{{"-Title=New", "a.jpg"}, {"-Title=New", "b.jpg"}}, r.calls)
	assert.Equal(t, 2, report.Failed())
	assert.Equal(t,
		"Invalid metadata format: Bad. Use KEY=VALUE.\nReplaced metadata: Title=New\n"+
			"Invalid metadata format: Bad. Use KEY=VALUE.\nReplaced metadata: Title=New\n",
		out.String())
}

func TestReplaceFailureSkipsToNextFile(t *testing.T) {
	r := &fakeRunner{fail: map[string]error{"a.jpg": errors.New("boom")}}
	var out bytes.Buffer
	report := NewDispatcher(r, &out).Replace(context.Background(), []string{"a.jpg", "b.jpg"}, []string{"A=1", "B=2"})

	assert.Len(t, r.calls, 3)
	assert.Equal(t, 1, report.Failed())
	assert.Contains(t, out.String(), "Error replacing metadata in a.jpg: boom")
}
