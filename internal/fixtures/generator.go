// Package fixtures builds sample member lists for tests, benchmarks and
// offline demos.
package fixtures

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/jask/adminui/internal/database/repository"
	"github.com/jask/adminui/internal/member"
)

var (
	firstNames = []string{"Aaron", "Aishwarya", "Arvind", "Caterina", "Chetan", "Jim", "Mony", "Rohan", "Sara", "Kate", "Nia", "Tomas"}
	lastNames  = []string{"Miles", "Naik", "Kumar", "Binotto", "Mcclain", "Payne", "Ali", "Dorsey", "Lopez", "Ito", "Okafor", "Berg"}
)

// Members returns n members with ids "1".."n". The same seed always
// yields the same list. Roughly one in six is an admin.
func Members(n int, seed int64) []member.Member {
	rng := rand.New(rand.NewSource(seed))
	out := make([]member.Member, 0, n)
	for i := 1; i <= n; i++ {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		role := member.RoleMember
		if rng.Intn(6) == 0 {
			role = "admin"
		}
		out = append(out, member.Member{
			ID:    member.ID(fmt.Sprint(i)),
			Name:  first + " " + last,
			Email: fmt.Sprintf("%s.%s%d@mailinator.com", strings.ToLower(first), strings.ToLower(last), i),
			Role:  role,
		})
	}
	return out
}

// Seed writes a generated snapshot for origin so the loader has an offline
// fallback.
func Seed(ctx context.Context, repo *repository.SnapshotRepo, origin string, n int) (repository.Snapshot, error) {
	return repo.Save(ctx, origin, Members(n, 1), 0)
}
