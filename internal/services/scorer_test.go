package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryTokens(t *testing.T) {
	assert.Equal(t, []string{"berlin", "tu", "computer", "science"}, QueryTokens("Berlin TU Computer Science"))
	assert.Equal(t, []string{"msc", "data", "eng", ""}, QueryTokens("MSc: data/eng!"))
}

func TestScoreLine(t *testing.T) {
	tokens := QueryTokens("Berlin TU Computer Science")

	t.Run("counts tokens contained as substrings", func(t *testing.T) {
		assert.Equal(t, 4, ScoreLine("computer science,tu berlin,berlin,de,masters", tokens))
		assert.Equal(t, 0, ScoreLine("history,sorbonne,paris,fr,bachelors", tokens))
	})

	t.Run("substring containment, not whole words", func(t *testing.T) {
		// "tu" matches inside "munich technical" only if present; here it
		// matches inside "tum".
		assert.Equal(t, 1, ScoreLine("mechanical engineering,tum,munich,de,masters", tokens))
	})

	t.Run("empty tokens never match", func(t *testing.T) {
		assert.Equal(t, 0, ScoreLine("anything at all", []string{"", ""}))
	})
}

func TestTopMatches(t *testing.T) {
	corpus := []string{
		"History,Sorbonne,Paris,FR,BACHELORS",
		"Computer Science,TU Berlin,Berlin,DE,MASTERS",
		"Data Science,Humboldt,Berlin,DE,MASTERS",
		"",
		"Fine Arts,KASK,Ghent,BE,BACHELORS",
	}

	t.Run("ranks by overlap, highest first", func(t *testing.T) {
		got := TopMatches("Berlin TU Computer Science", corpus)
		require.Len(t, got, 4)
		assert.Equal(t, "Computer Science,TU Berlin,Berlin,DE,MASTERS", got[0])
		assert.Equal(t, "Data Science,Humboldt,Berlin,DE,MASTERS", got[1])
	})

	t.Run("empty lines are dropped", func(t *testing.T) {
		for _, line := range TopMatches("anything", corpus) {
			assert.NotEmpty(t, line)
		}
	})

	t.Run("equal scores keep corpus order", func(t *testing.T) {
		got := TopMatches("zzz no overlap at all qqq", corpus)
		require.Len(t, got, 4)
		assert.Equal(t, "History,Sorbonne,Paris,FR,BACHELORS", got[0])
		assert.Equal(t, "Computer Science,TU Berlin,Berlin,DE,MASTERS", got[1])
		assert.Equal(t, "Data Science,Humboldt,Berlin,DE,MASTERS", got[2])
		assert.Equal(t, "Fine Arts,KASK,Ghent,BE,BACHELORS", got[3])
	})

	t.Run("caps at twelve lines", func(t *testing.T) {
		big := make([]string, 0, 30)
		for i := 0; i < 30; i++ {
			big = append(big, fmt.Sprintf("Program %d,School %d,City,DE,MASTERS", i, i))
		}
		got := TopMatches("program", big)
		assert.Len(t, got, 12)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		first := TopMatches("Berlin TU Computer Science", corpus)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, TopMatches("Berlin TU Computer Science", corpus))
		}
	})
}

func TestRetrieveContext(t *testing.T) {
	corpus := []string{
		"Computer Science,TU Berlin,Berlin,DE,MASTERS",
		"History,Sorbonne,Paris,FR,BACHELORS",
	}
	got := RetrieveContext("berlin", corpus)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Computer Science,TU Berlin,Berlin,DE,MASTERS", lines[0])

	assert.Empty(t, RetrieveContext("berlin", nil))
}
