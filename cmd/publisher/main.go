package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"certchamps/publisher/internal/config"
	"certchamps/publisher/internal/firebase"
	"certchamps/publisher/internal/loader"
	"certchamps/publisher/internal/metrics"
	"certchamps/publisher/internal/publisher"
	"certchamps/publisher/internal/repositories"
	"certchamps/publisher/internal/repositories/bucket"
	"certchamps/publisher/internal/repositories/dryrun"
	fsrepo "certchamps/publisher/internal/repositories/firestore"
	"certchamps/publisher/internal/topics"
	"certchamps/publisher/internal/utils"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const metricsJob = "question_publisher"

type options struct {
	configPath  string
	credentials string
	project     string
	bucket      string
	questions   string
	images      string
	collection  string
	dryRun      bool
	prune       bool
	seedFile    string
}

type stores struct {
	sets   repositories.QuestionSetRepository
	images repositories.ImageRepository
	topics repositories.TopicRepository
	close  func() error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(afero.NewOsFs()).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "publisher",
		Short:        "Publish the question bank to Firestore and Cloud Storage",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPublish(cmd, fs, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", os.Getenv("PUBLISHER_CONFIG"), "path to a YAML config file")
	flags.StringVar(&opts.credentials, "credentials", "", "service account key file")
	flags.StringVar(&opts.project, "project", "", "Firebase project id (defaults to the key's project)")
	flags.StringVar(&opts.bucket, "bucket", "", "storage bucket for question images")
	flags.StringVar(&opts.collection, "collection", "", "Firestore collection for question sets")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "log the writes without making them")

	publish := &cobra.Command{
		Use:   "publish",
		Short: "Upload question sets, their parts and images",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPublish(cmd, fs, opts)
		},
	}
	// the root command publishes too, so it takes the same flags
	for _, c := range []*cobra.Command{root, publish} {
		c.Flags().StringVar(&opts.questions, "questions", "", "question bank JSON file")
		c.Flags().StringVar(&opts.images, "images", "", "directory of question images")
		c.Flags().BoolVar(&opts.prune, "prune-stale-parts", false, "delete part documents beyond each set's current part count")
	}

	seed := &cobra.Command{
		Use:   "seed-topics",
		Short: "Merge topic lists from a YAML file onto a subject level document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeedTopics(cmd, fs, opts)
		},
	}
	seed.Flags().StringVar(&opts.seedFile, "file", "", "topics YAML file")
	_ = seed.MarkFlagRequired("file")

	root.AddCommand(publish, seed)
	return root
}

// loadConfig layers command-line flags over the file and environment config
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("credentials") {
		cfg.CredentialsFile = opts.credentials
	}
	if changed("project") {
		cfg.ProjectID = opts.project
	}
	if changed("bucket") {
		cfg.Bucket = opts.bucket
	}
	if changed("collection") {
		cfg.Collection = opts.collection
	}
	if changed("questions") {
		cfg.QuestionsFile = opts.questions
	}
	if changed("images") {
		cfg.ImageDir = opts.images
	}
	if changed("dry-run") {
		cfg.DryRun = opts.dryRun
	}
	if changed("prune-stale-parts") {
		cfg.PruneStaleParts = opts.prune
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, string, error) {
	logger, err := utils.NewLogger(cfg.LogDevelopment)
	if err != nil {
		return nil, "", fmt.Errorf("failed to initialize logger: %w", err)
	}
	runID := uuid.NewString()
	return logger.With(zap.String("run_id", runID)), runID, nil
}

func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*stores, error) {
	if cfg.DryRun {
		logger.Info("dry run, nothing will be written")
		return &stores{
			sets:   dryrun.NewQuestionSetRepo(logger),
			images: dryrun.NewImageRepo(logger),
			topics: dryrun.NewTopicRepo(logger),
			close:  func() error { return nil },
		}, nil
	}

	clients, err := firebase.NewClients(ctx, firebase.Settings{
		CredentialsFile: cfg.CredentialsFile,
		ProjectID:       cfg.ProjectID,
		Bucket:          cfg.Bucket,
	})
	if err != nil {
		return nil, err
	}

	sets, err := fsrepo.NewQuestionSetRepo(clients.Firestore, cfg.Collection, cfg.ContentSubcollection)
	if err != nil {
		clients.Close()
		return nil, err
	}
	topicRepo, err := fsrepo.NewTopicRepo(clients.Firestore)
	if err != nil {
		clients.Close()
		return nil, err
	}
	images, err := bucket.NewImageRepo(clients.Bucket)
	if err != nil {
		clients.Close()
		return nil, err
	}

	return &stores{sets: sets, images: images, topics: topicRepo, close: clients.Close}, nil
}

func runPublish(cmd *cobra.Command, fs afero.Fs, opts *options) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, runID, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	sets, err := loader.LoadQuestionSets(fs, cfg.QuestionsFile)
	if err != nil {
		logger.Error("failed to load question sets", zap.Error(err))
		return err
	}
	logger.Info("loaded question sets", zap.Int("count", len(sets)), zap.String("file", cfg.QuestionsFile))

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open stores", zap.Error(err))
		return err
	}
	defer st.close()

	recorder := metrics.NewRecorder()
	pub := publisher.NewPublisher(st.sets, st.images, fs, &publisher.Config{
		ImageDir:        cfg.ImageDir,
		ImagePrefix:     cfg.ImagePrefix,
		PruneStaleParts: cfg.PruneStaleParts,
	}, recorder, logger)

	_, runErr := pub.Run(ctx, sets)

	if cfg.PushgatewayURL != "" {
		if err := recorder.Push(cfg.PushgatewayURL, metricsJob, runID); err != nil {
			logger.Warn("failed to push metrics", zap.String("url", cfg.PushgatewayURL), zap.Error(err))
		}
	}
	return runErr
}

func runSeedTopics(cmd *cobra.Command, fs afero.Fs, opts *options) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, _, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	seed, err := topics.LoadSeedFile(fs, opts.seedFile)
	if err != nil {
		logger.Error("failed to load seed file", zap.Error(err))
		return err
	}

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open stores", zap.Error(err))
		return err
	}
	defer st.close()

	if err := topics.NewSeeder(st.topics, logger).Seed(ctx, seed); err != nil {
		logger.Error("failed to seed topics", zap.Error(err))
		return err
	}
	return nil
}
