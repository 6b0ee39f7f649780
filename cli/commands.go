package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"blogadmin/app/admin"
	"blogadmin/app/factories"
	"blogadmin/app/models"
	"blogadmin/app/repositories"
	"blogadmin/app/routes"
	"blogadmin/app/sessions"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultDBPath       = "data/blogadmin.db"
	defaultSessionsPath = "data/sessions"
)

var log = logrus.New()

// HandleCommand handles CLI subcommands
func HandleCommand(args []string) {
	if len(args) < 1 {
		printHelp()
		os.Exit(1)
	}

	cmd := args[0]
	switch cmd {
	case "serve":
		serve(args[1:])
	case "init":
		initCmd(args[1:])
	case "generate_users":
		generateUsers(args[1:])
	case "generate_blogs":
		generateBlogs(args[1:])
	case "generate_posts":
		generatePosts(args[1:])
	case "help":
		printHelp()
	default:
		fmt.Printf("Unknown command: %s\n\n", cmd)
		printHelp()
		os.Exit(1)
	}
}

// printHelp prints help for CLI subcommands
func printHelp() {
	helpText := `Usage: blogadmin <command> [options]

Commands:
  serve [--addr :8080] [--db PATH] [--sessions PATH]   Run the admin service
  init [--db PATH] [--username U] [--password P]       Migrate and create a superuser
  generate_users -c N                                  Generate fake users
  generate_blogs -c N [-o USER_ID]                     Generate fake blogs
  generate_posts -c N [-b BLOG_ID] [-nb M] [--author USER_ID]
                                                       Generate fake posts
  help                                                 Display this help message
`
	fmt.Println(helpText)
}

func openDB(path string) *gorm.DB {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create database directory: %v", err)
		}
	}
	db, err := repositories.Open(path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	return db
}

func buildFactories(db *gorm.DB) (*factories.UserFactory, *factories.BlogFactory, *factories.PostFactory) {
	users := factories.NewUserFactory(repositories.NewGormUserRepository(db))
	blogs := factories.NewBlogFactory(repositories.NewGormBlogRepository(db), users)
	posts := factories.NewPostFactory(repositories.NewGormPostRepository(db), blogs, users)
	return users, blogs, posts
}

// serve runs the admin service
func serve(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "listen address")
	dbPath := fs.String("db", defaultDBPath, "database path")
	sessionsPath := fs.String("sessions", defaultSessionsPath, "session store path")
	fs.Parse(args)

	db := openDB(*dbPath)
	if err := os.MkdirAll(*sessionsPath, 0755); err != nil {
		log.Fatalf("Failed to create session directory: %v", err)
	}
	store, err := sessions.NewStore(*sessionsPath)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}
	defer store.Close()

	site := admin.BuildSite()
	router := routes.SetupRoutes(db, site, store, log)

	log.Infof("Starting admin service on %s", *addr)
	if err := routes.StartServer(*addr, router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initCmd migrates the schema and creates a superuser account
func initCmd(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	dbPath := fs.String("db", defaultDBPath, "database path")
	username := fs.String("username", "admin", "superuser name")
	password := fs.String("password", "", "superuser password (required)")
	fs.Parse(args)

	if *password == "" {
		log.Fatal("--password is required")
	}

	db := openDB(*dbPath)
	users := repositories.NewGormUserRepository(db)

	u := models.NewUser()
	u.Username = *username
	u.Email = *username + "@localhost"
	u.IsStaff = true
	u.IsSuperuser = true
	if err := u.SetPassword(*password); err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	created, wasNew, err := users.GetOrCreate(u)
	if err != nil {
		log.Fatalf("Failed to create superuser: %v", err)
	}
	if !wasNew {
		log.Warnf("superuser %q already exists (id %d)", created.Username, created.ID)
	}
	fmt.Println("Done")
}

// generateUsers bulk-creates fake users
func generateUsers(args []string) {
	fs := flag.NewFlagSet("generate_users", flag.ExitOnError)
	var count int
	fs.IntVar(&count, "c", 10, "number of users to create")
	fs.IntVar(&count, "count", 10, "number of users to create")
	dbPath := fs.String("db", defaultDBPath, "database path")
	fs.Parse(args)

	db := openDB(*dbPath)
	if err := runGenerateUsers(db, count); err != nil {
		log.Fatalf("generate_users: %v", err)
	}
	fmt.Println("Done")
}

func runGenerateUsers(db *gorm.DB, count int) error {
	users, _, _ := buildFactories(db)
	_, err := users.CreateBatch(count, factories.UserOverrides{})
	return err
}

// generateBlogs bulk-creates fake blogs
func generateBlogs(args []string) {
	fs := flag.NewFlagSet("generate_blogs", flag.ExitOnError)
	var count, ownerID int
	fs.IntVar(&count, "c", 10, "number of blogs to create")
	fs.IntVar(&count, "count", 10, "number of blogs to create")
	fs.IntVar(&ownerID, "o", 0, "owner user id; a fresh owner per blog when omitted")
	fs.IntVar(&ownerID, "owner", 0, "owner user id; a fresh owner per blog when omitted")
	dbPath := fs.String("db", defaultDBPath, "database path")
	fs.Parse(args)

	db := openDB(*dbPath)
	if err := runGenerateBlogs(db, count, uint(ownerID)); err != nil {
		log.Fatalf("generate_blogs: %v", err)
	}
	fmt.Println("Done")
}

func runGenerateBlogs(db *gorm.DB, count int, ownerID uint) error {
	_, blogs, _ := buildFactories(db)

	var o factories.BlogOverrides
	if ownerID != 0 {
		owner, err := repositories.NewGormUserRepository(db).GetByID(ownerID)
		if err != nil {
			return fmt.Errorf("owner %d: %w", ownerID, err)
		}
		o.Owner = owner
	}
	_, err := blogs.CreateBatch(count, o)
	return err
}

// generatePosts bulk-creates fake posts
func generatePosts(args []string) {
	fs := flag.NewFlagSet("generate_posts", flag.ExitOnError)
	var count, blogID, numBlogs, authorID int
	fs.IntVar(&count, "c", 10, "number of posts to create")
	fs.IntVar(&count, "count", 10, "number of posts to create")
	fs.IntVar(&blogID, "b", 0, "blog id to place all posts in")
	fs.IntVar(&numBlogs, "nb", 0, "number of new blogs, each filled with count posts")
	fs.IntVar(&numBlogs, "num-blogs", 0, "number of new blogs, each filled with count posts")
	fs.IntVar(&authorID, "author", 0, "author user id; a fresh author per post when omitted")
	dbPath := fs.String("db", defaultDBPath, "database path")
	fs.Parse(args)

	db := openDB(*dbPath)
	if err := runGeneratePosts(db, count, uint(blogID), numBlogs, uint(authorID)); err != nil {
		log.Fatalf("generate_posts: %v", err)
	}
	fmt.Println("Done")
}

// runGeneratePosts places count posts per target blog. A blog count
// takes precedence over a fixed blog id; with neither, every post
// gets its own freshly generated blog.
func runGeneratePosts(db *gorm.DB, count int, blogID uint, numBlogs int, authorID uint) error {
	_, blogFactory, postFactory := buildFactories(db)

	var o factories.PostOverrides
	if authorID != 0 {
		author, err := repositories.NewGormUserRepository(db).GetByID(authorID)
		if err != nil {
			return fmt.Errorf("author %d: %w", authorID, err)
		}
		o.Author = author
	}

	if numBlogs > 0 {
		blogs, err := blogFactory.CreateBatch(numBlogs, factories.BlogOverrides{})
		if err != nil {
			return err
		}
		for _, blog := range blogs {
			o.Blog = blog
			if _, err := postFactory.CreateBatch(count, o); err != nil {
				return err
			}
		}
		return nil
	}

	if blogID != 0 {
		blog, err := repositories.NewGormBlogRepository(db).GetByID(blogID)
		if err != nil {
			return fmt.Errorf("blog %d: %w", blogID, err)
		}
		o.Blog = blog
	}
	_, err := postFactory.CreateBatch(count, o)
	return err
}
