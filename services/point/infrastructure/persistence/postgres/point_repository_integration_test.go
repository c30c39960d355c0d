//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ecoleta/ecoleta/pkg/database"
	"github.com/ecoleta/ecoleta/pkg/logger"
	"github.com/ecoleta/ecoleta/pkg/testutil/containers"
	pointdomain "github.com/ecoleta/ecoleta/services/point/domain"
	"github.com/ecoleta/ecoleta/services/point/domain/models"
	"github.com/ecoleta/ecoleta/services/point/infrastructure/persistence/postgres"
)

type PointRepositorySuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	repo     *postgres.PointRepository
}

func TestPointRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PointRepositorySuite))
}

func (s *PointRepositorySuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.repo = postgres.NewPointRepository(database.New(s.postgres.DB, logger.Discard()), nil)
}

func (s *PointRepositorySuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "point_items", "points"))
}

func newPoint(name string, ids ...int64) *models.NewPoint {
	return &models.NewPoint{
		Name: name, Email: "a@b.com", Whatsapp: "555",
		Latitude: 10, Longitude: 20, City: "X", UF: "SP",
		ItemIDs: ids,
	}
}

func (s *PointRepositorySuite) count(table string) int {
	n, err := s.postgres.Count(context.Background(), table)
	s.Require().NoError(err)
	return n
}

func (s *PointRepositorySuite) TestCreate_EcoCenter() {
	ctx := context.Background()

	p, err := s.repo.Create(ctx, newPoint("Eco Center", 1, 2))
	s.Require().NoError(err)
	s.Positive(p.ID)
	s.Equal([]int64{1, 2}, p.ItemIDs())
	s.Equal("Lâmpadas", p.Items[0].Title)
	s.False(p.HasPhoto())

	got, err := s.repo.GetByID(ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("Eco Center", got.Name)
	s.Equal([]int64{1, 2}, got.ItemIDs())
	s.Empty(got.Image)
}

func (s *PointRepositorySuite) TestCreate_StoresImageName() {
	p, err := s.repo.Create(context.Background(), &models.NewPoint{
		Name: "Photo", Email: "a@b.com", Whatsapp: "1", City: "X", UF: "SP",
		Image: "uuid-front.jpg", ItemIDs: []int64{3},
	})
	s.Require().NoError(err)

	got, err := s.repo.GetByID(context.Background(), p.ID)
	s.Require().NoError(err)
	s.Equal("uuid-front.jpg", got.Image)
}

func (s *PointRepositorySuite) TestCreate_UnknownItemRollsBack() {
	_, err := s.repo.Create(context.Background(), newPoint("Ghost", 1, 999, 998))

	s.Require().ErrorIs(err, pointdomain.ErrUnknownItem)
	var ue *pointdomain.UnknownItemsError
	s.Require().ErrorAs(err, &ue)
	s.Equal([]int64{999, 998}, ue.IDs)

	s.Zero(s.count("points"))
	s.Zero(s.count("point_items"))
}

// An item removed after the existence check but before the association
// insert surfaces through the foreign key and still rolls everything back.
func (s *PointRepositorySuite) TestCreate_ItemDeletedMidTransactionRollsBack() {
	ctx := context.Background()
	for _, stmt := range []string{
		`CREATE FUNCTION drop_item_two() RETURNS trigger AS $$
		BEGIN
			IF NEW.item_id = 2 THEN
				DELETE FROM items WHERE id = 2;
			END IF;
			RETURN NEW;
		END $$ LANGUAGE plpgsql`,
		`CREATE TRIGGER drop_item_two BEFORE INSERT ON point_items
			FOR EACH ROW EXECUTE FUNCTION drop_item_two()`,
	} {
		_, err := s.postgres.DB.ExecContext(ctx, stmt)
		s.Require().NoError(err)
	}
	s.T().Cleanup(func() {
		_, _ = s.postgres.DB.ExecContext(context.Background(), `DROP TRIGGER IF EXISTS drop_item_two ON point_items`)
		_, _ = s.postgres.DB.ExecContext(context.Background(), `DROP FUNCTION IF EXISTS drop_item_two()`)
	})

	_, err := s.repo.Create(ctx, newPoint("Vanishing", 1, 2))

	s.Require().ErrorIs(err, pointdomain.ErrUnknownItem)
	var ue *pointdomain.UnknownItemsError
	s.Require().ErrorAs(err, &ue)
	s.Equal([]int64{2}, ue.IDs)
	s.Equal("items", ue.Violation().Field)

	s.Zero(s.count("points"))
	s.Zero(s.count("point_items"))
	s.Equal(6, s.count("items"))
}

func (s *PointRepositorySuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(context.Background(), 424242)
	s.ErrorIs(err, pointdomain.ErrPointNotFound)
}

func (s *PointRepositorySuite) TestList_Filters() {
	ctx := context.Background()
	a, err := s.repo.Create(ctx, newPoint("A", 1))
	s.Require().NoError(err)
	b, err := s.repo.Create(ctx, &models.NewPoint{
		Name: "B", Email: "b@b.com", Whatsapp: "2", City: "Niterói", UF: "RJ", ItemIDs: []int64{2, 3},
	})
	s.Require().NoError(err)

	all, err := s.repo.List(ctx, models.Filter{})
	s.Require().NoError(err)
	s.Len(all, 2)
	s.Equal(a.ID, all[0].ID)

	byUF, err := s.repo.List(ctx, models.Filter{UF: "RJ"})
	s.Require().NoError(err)
	s.Require().Len(byUF, 1)
	s.Equal(b.ID, byUF[0].ID)
	s.Equal([]int64{2, 3}, byUF[0].ItemIDs())

	byItem, err := s.repo.List(ctx, models.Filter{ItemIDs: []int64{3, 6}})
	s.Require().NoError(err)
	s.Require().Len(byItem, 1)
	s.Equal(b.ID, byItem[0].ID)

	none, err := s.repo.List(ctx, models.Filter{City: "Nowhere"})
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

// TestCreate_ConcurrentDisjoint verifies concurrent registrations get
// distinct ids and exactly their own items.
func (s *PointRepositorySuite) TestCreate_ConcurrentDisjoint() {
	ctx := context.Background()
	const goroutines = 20

	type result struct {
		want []int64
		p    *models.Point
		err  error
	}
	results := make([]result, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids := []int64{int64(i%6) + 1, int64((i+1)%6) + 1}
			p, err := s.repo.Create(ctx, newPoint(fmt.Sprintf("P%d", i), ids...))
			results[i] = result{want: ids, p: p, err: err}
		}(i)
	}
	wg.Wait()

	seen := map[int64]bool{}
	for _, r := range results {
		s.Require().NoError(r.err)
		s.False(seen[r.p.ID], "duplicate id %d", r.p.ID)
		seen[r.p.ID] = true

		got, err := s.repo.GetByID(ctx, r.p.ID)
		s.Require().NoError(err)
		s.ElementsMatch(r.want, got.ItemIDs())
	}
	s.Equal(goroutines, s.count("points"))
	s.Equal(goroutines*2, s.count("point_items"))
}
