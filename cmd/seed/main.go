package main

import (
	"context"
	"flag"
	"time"

	"github.com/yhdfc-next/internal/config"
	"github.com/yhdfc-next/internal/constants"
	"github.com/yhdfc-next/internal/logger"
	"github.com/yhdfc-next/internal/models"
	"github.com/yhdfc-next/internal/repository"
	"github.com/yhdfc-next/internal/service"
)

type samplePost struct {
	title        string
	categoryID   uint
	excerpt      string
	content      string
	tags         string
	source       string
	externalURL  string
	clientName   string
	trainingDate string
}

// 预置栏目 ID 见 models.DefaultCategories
var samplePosts = []samplePost{
	{
		title:      "iOS 17 Forensics: A Deep Dive",
		categoryID: 2,
		excerpt:    "What changed for acquisition and analysis in the latest iOS release.",
		content:    "<p>Full file system extraction on iOS 17 requires a new approach.</p><ul><li>Keychain</li><li>Unified logs</li></ul>",
		tags:       "ios,mobile,acquisition",
	},
	{
		title:      "Chain of Custody for Digital Evidence",
		categoryID: 3,
		excerpt:    "Keeping evidence admissible from seizure to courtroom.",
		content:    "<p>Every transfer of an exhibit must be recorded with a hash value.</p>",
		tags:       "evidence,court",
	},
	{
		title:      "Investigating Messenger Phishing Scams",
		categoryID: 4,
		excerpt:    "How messenger impersonation fraud is traced.",
		content:    "<p>Recovering deleted chats is often the first step.</p>",
		tags:       "phishing,messenger",
	},
	{
		title:       "YHDFC Featured in National Security Daily",
		categoryID:  5,
		excerpt:     "Our lab was introduced in a feature on private forensics.",
		content:     "<p>Interview with the lab director.</p>",
		tags:        "press",
		source:      "National Security Daily",
		externalURL: "https://example.com/news/yhdfc",
	},
	{
		title:        "Mobile Forensics Course for Investigators",
		categoryID:   6,
		excerpt:      "Three-day hands-on course.",
		content:      "<p>Acquisition, parsing and reporting with commercial tools.</p>",
		tags:         "training,mobile",
		clientName:   "Regional Police Agency",
		trainingDate: "2024-05-20",
	},
}

func main() {
	var withPosts bool
	flag.BoolVar(&withPosts, "posts", true, "写入示例文章")
	flag.Parse()

	cfg := config.Load()
	log := logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions()).Sugar()
	defer func() { _ = log.Sync() }()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
		LogLevel:               cfg.Database.LogLevel,
	}); err != nil {
		log.Fatalw("seed_database_connect_failed", "error", err)
	}
	if err := models.AutoMigrate(); err != nil {
		log.Fatalw("seed_database_migrate_failed", "error", err)
	}

	if err := models.EnsureDefaultCategories(); err != nil {
		log.Fatalw("seed_categories_failed", "error", err)
	}
	if err := models.InitDefaultAdmin(models.DefaultAdminInput{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
		Email:    cfg.Admin.Email,
		FullName: cfg.Admin.FullName,
	}); err != nil {
		log.Fatalw("seed_admin_failed", "error", err)
	}

	if !withPosts {
		log.Infow("seed_done", "posts", 0)
		return
	}

	var existing int64
	if err := models.DB.Model(&models.Post{}).Count(&existing).Error; err != nil {
		log.Fatalw("seed_posts_count_failed", "error", err)
	}
	if existing > 0 {
		log.Infow("seed_posts_skipped", "existing", existing)
		return
	}

	posts := service.NewPostService(
		repository.NewPostRepository(models.DB),
		repository.NewCategoryRepository(models.DB),
		0,
	)
	ctx := context.Background()
	published := true
	created := 0
	for _, item := range samplePosts {
		item := item
		input := service.PostInput{
			Title:       &item.title,
			Excerpt:     &item.excerpt,
			Content:     &item.content,
			CategoryID:  &item.categoryID,
			Tags:        &item.tags,
			IsPublished: &published,
		}
		if item.source != "" {
			input.Source = &item.source
			input.ExternalURL = &item.externalURL
		}
		if item.trainingDate != "" {
			if date, err := time.Parse(constants.DateLayout, item.trainingDate); err == nil {
				input.TrainingDate = &date
			}
			input.ClientName = &item.clientName
		}
		post, err := posts.Create(ctx, input)
		if err != nil {
			log.Warnw("seed_post_failed", "title", item.title, "error", err)
			continue
		}
		created++
		log.Infow("seed_post_created", "id", post.ID, "slug", post.Slug)
	}
	log.Infow("seed_done", "posts", created)
}
