package rendering

import (
	"fmt"
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedBlock(kind BlockKind, height float64) Block {
	return Block{Kind: kind, Height: height, KeepTogether: kind == BlockExperience}
}

func tallExperience(head float64, bullets ...float64) Block {
	points := make([]string, len(bullets))
	total := head
	for i, h := range bullets {
		points[i] = fmt.Sprintf("point %d", i+1)
		total += h
	}
	return Block{
		Kind:         BlockExperience,
		Section:      SectionExperience,
		Experience:   &types.RenderedExperience{ID: "e1", Title: "Engineer", Points: points},
		Height:       total + blockGap,
		KeepTogether: true,
		head:         head,
		bullets:      bullets,
	}
}

func heights(pages [][]Block) [][]float64 {
	out := make([][]float64, len(pages))
	for i, p := range pages {
		for _, b := range p {
			out[i] = append(out[i], b.Height)
		}
	}
	return out
}

func TestLineCount(t *testing.T) {
	// 100pt at 10pt with 0.5em glyphs fits 20 characters.
	assert.Equal(t, 1, lineCount("", 100, 10))
	assert.Equal(t, 1, lineCount("12345678901234567890", 100, 10))
	assert.Equal(t, 2, lineCount("123456789012345678901", 100, 10))
	assert.Equal(t, 3, lineCount("a\nb\n", 100, 10))
	assert.Equal(t, 5, lineCount("abcde", 1, 10))
}

func TestPaginate_Empty(t *testing.T) {
	assert.Nil(t, Paginate(nil, 696))
}

func TestPaginate_BlocksMoveWhole(t *testing.T) {
	blocks := []Block{
		fixedBlock(BlockExperience, 300),
		fixedBlock(BlockExperience, 300),
		fixedBlock(BlockExperience, 300),
	}

	pages := Paginate(blocks, 696)

	assert.Equal(t, [][]float64{{300, 300}, {300}}, heights(pages))
}

func TestPaginate_HeadingStaysWithNextBlock(t *testing.T) {
	heading := fixedBlock(BlockHeading, 20)
	heading.KeepWithNext = true
	blocks := []Block{
		fixedBlock(BlockParagraph, 650),
		heading,
		fixedBlock(BlockExperience, 300),
	}

	pages := Paginate(blocks, 696)

	require.Len(t, pages, 2)
	assert.Equal(t, BlockParagraph, pages[0][0].Kind)
	require.Len(t, pages[1], 2)
	assert.Equal(t, BlockHeading, pages[1][0].Kind)
	assert.Equal(t, BlockExperience, pages[1][1].Kind)
}

func TestPaginate_OversizedExperienceSplitsBetweenBullets(t *testing.T) {
	blocks := []Block{
		fixedBlock(BlockParagraph, 100),
		tallExperience(30, 200, 200, 200, 200),
	}

	pages := Paginate(blocks, 696)

	require.Len(t, pages, 2)
	require.Len(t, pages[0], 2)
	first := pages[0][1]
	assert.False(t, first.Continued)
	assert.Equal(t, []string{"point 1", "point 2"}, first.Experience.Points)

	require.Len(t, pages[1], 1)
	second := pages[1][0]
	assert.True(t, second.Continued)
	assert.Equal(t, "Engineer", second.Experience.Title)
	assert.Equal(t, []string{"point 3", "point 4"}, second.Experience.Points)

	for _, p := range pages {
		var used float64
		for _, b := range p {
			used += b.Height
		}
		assert.LessOrEqual(t, used, 696.0+blockGap)
	}
}

func TestPaginate_SingleBulletTallerThanPage(t *testing.T) {
	pages := Paginate([]Block{tallExperience(30, 800)}, 696)

	require.Len(t, pages, 1)
	assert.Equal(t, []string{"point 1"}, pages[0][0].Experience.Points)
}

func TestPaginate_SplitStartsOnNewPageWhenNoRoom(t *testing.T) {
	blocks := []Block{
		fixedBlock(BlockParagraph, 600),
		tallExperience(30, 300, 300, 300),
	}

	pages := Paginate(blocks, 696)

	require.Len(t, pages, 3)
	assert.Len(t, pages[0], 1)
	assert.Equal(t, []string{"point 1", "point 2"}, pages[1][0].Experience.Points)
	assert.False(t, pages[1][0].Continued)
	assert.Equal(t, []string{"point 3"}, pages[2][0].Experience.Points)
	assert.True(t, pages[2][0].Continued)
}

func TestPaginate_OffsetReducesFirstPage(t *testing.T) {
	pages := paginate([]Block{fixedBlock(BlockExperience, 300)}, 696, 500)

	require.Len(t, pages, 2)
	assert.Empty(t, pages[0])
	assert.Len(t, pages[1], 1)
}

func TestSectionBlocks_SkipEmptySections(t *testing.T) {
	s := validStyle("x")
	r := types.RenderReadyResume{Name: "A"}

	assert.Empty(t, sectionBlocks(s, r, SectionSummary, 500))
	assert.Empty(t, sectionBlocks(s, r, SectionSkills, 500))
	assert.Empty(t, sectionBlocks(s, r, SectionExperience, 500))
}

func TestExperienceBlock_HeightGrowsWithBullets(t *testing.T) {
	s := validStyle("x")
	short := experienceBlock(s, types.RenderedExperience{Points: []string{"one"}}, 400)
	long := experienceBlock(s, types.RenderedExperience{Points: []string{"one", "two", "three"}}, 400)

	assert.Greater(t, long.Height, short.Height)
	assert.Len(t, long.bullets, 3)
	assert.True(t, long.KeepTogether)
}

func TestContactLine_SkipsBlanks(t *testing.T) {
	r := types.RenderReadyResume{Email: "a@b.c", Phone: " ", GitHub: "gh"}
	assert.Equal(t, []string{"a@b.c", "gh"}, contactLine(r))
}
