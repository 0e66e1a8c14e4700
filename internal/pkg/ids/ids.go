package ids

import (
	"strings"

	"github.com/google/uuid"
)

// 各实体的不透明 ID，带前缀便于排查

func ProductID() string {
	return "prod_" + compact()
}

func JobID() string {
	return "job_" + compact()
}

func ScoreID() string {
	return "score_" + compact()
}

func compact() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
