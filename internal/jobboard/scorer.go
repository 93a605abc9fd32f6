package jobboard

import (
	"hash/fnv"
	"strconv"
)

// Scorer assigns the match score stored on an application.
type Scorer interface {
	Score(email string, jobID int64) int
}

// HashScorer derives a stable score in [70, 95] from the applicant and job, so
// the same pair always scores the same.
type HashScorer struct{}

const (
	minScore   = 70
	scoreRange = 26
)

func (HashScorer) Score(email string, jobID int64) int {
	h := fnv.New32a()
	h.Write([]byte(email + ":" + strconv.FormatInt(jobID, 10)))
	return minScore + int(h.Sum32()%scoreRange)
}
