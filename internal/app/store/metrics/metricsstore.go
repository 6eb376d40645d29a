package metricsstore

import (
	"context"

	"github.com/dalemusser/youthportal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Counts is the set of totals behind the admin dashboard header and the
// Prometheus account gauges. Admin accounts are not counted.
type Counts struct {
	Pending         int64 `json:"pending"`
	Approved        int64 `json:"approved"`
	Rejected        int64 `json:"rejected"`
	SurveyCompleted int64 `json:"survey_completed"`
	Surveys         int64 `json:"surveys"`
}

// FetchDashboardCounts returns the high-level counts used by dashboards.
// On error it returns 0 for that counter.
func FetchDashboardCounts(ctx context.Context, db *mongo.Database) Counts {
	var out Counts
	users := db.Collection("users")
	notAdmin := bson.M{"$ne": models.UserTypeAdmin}

	count := func(c *mongo.Collection, filter bson.M, dst *int64) {
		if n, err := c.CountDocuments(ctx, filter); err == nil {
			*dst = n
		}
	}

	count(users, bson.M{"user_type": notAdmin, "status": bson.M{"$in": bson.A{models.StatusPending, "", nil}}}, &out.Pending)
	count(users, bson.M{"user_type": notAdmin, "status": models.StatusApproved}, &out.Approved)
	count(users, bson.M{"user_type": notAdmin, "status": models.StatusRejected}, &out.Rejected)
	count(users, bson.M{"user_type": notAdmin, "survey_completed": true}, &out.SurveyCompleted)
	count(db.Collection("surveys"), bson.M{}, &out.Surveys)

	return out
}
