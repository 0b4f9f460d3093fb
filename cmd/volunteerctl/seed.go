package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/volunteerhub/volunteer-server/internal/config"
	"github.com/volunteerhub/volunteer-server/internal/database"
	"github.com/volunteerhub/volunteer-server/internal/volunteer"
	"github.com/volunteerhub/volunteer-server/internal/volunteer/service"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Insert sample opportunities into the configured database",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "owner",
			Usage: "ownerEmail for the sample opportunities",
			Value: "organizer@example.com",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		uri := cfg.MongoDB.ConnectionURI()
		if uri == "" {
			return fmt.Errorf("MONGODB_URI or MONGODB_HOST is required")
		}

		ctx := c.Context
		client, err := database.ConnectMongo(ctx, uri, cfg.MongoDB.Timeout)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		logrus.Info("Connected to database")

		svc, err := service.NewMongoService(ctx, client.Database(cfg.MongoDB.Database),
			cfg.MongoDB.OpportunitiesCollection, cfg.MongoDB.ApplicationsCollection)
		if err != nil {
			return err
		}
		n, err := seedOpportunities(ctx, svc, c.String("owner"), time.Now())
		if err != nil {
			return fmt.Errorf("failed to seed opportunities: %w", err)
		}
		logrus.WithField("count", n).Info("Opportunities seeded successfully")
		return nil
	},
}

var sampleOpportunities = []struct {
	title, category, location string
	needed                    int
	inDays                    int
}{
	{"Beach Cleanup", "Environment", "Cox's Bazar", 25, 14},
	{"Reading Buddies", "Education", "Central Library", 8, 21},
	{"Blood Donation Drive", "Healthcare", "City Hospital", 40, 7},
	{"Winter Clothes Collection", "Social Service", "Community Hall", 15, 30},
	{"Tree Planting Day", "Environment", "Riverside Park", 30, 45},
}

func seedOpportunities(ctx context.Context, svc *service.Service, owner string, now time.Time) (int, error) {
	for i, s := range sampleOpportunities {
		d := volunteer.Document{
			volunteer.FieldTitle:      s.title,
			volunteer.FieldCategory:   s.category,
			volunteer.FieldDeadline:   now.AddDate(0, 0, s.inDays).Format("2006-01-02"),
			volunteer.FieldOwnerEmail: owner,
			"location":                s.location,
			"volunteersNeeded":        s.needed,
		}
		if _, err := svc.CreateOpportunity(ctx, d); err != nil {
			return i, err
		}
	}
	return len(sampleOpportunities), nil
}
