package main

import (
	"fmt"
	"log"
	"os"

	"marketbe/pkg/images"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// publicImagePrefix is where stored files are exposed. The reconciler also
// recognizes the legacy prefixes so URLs written by earlier revisions still
// get cleaned up.
const publicImagePrefix = "/images/"

var legacyImagePrefixes = []string{"/uploads/", "/api/images/"}

var (
	cfg        Config
	jwtSecret  []byte
	imgStore   *images.DiskStore
	ingestor   *images.Ingestor
	reconciler *images.Reconciler
)

func main() {
	// .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	var err error
	cfg, err = loadConfig()
	if err != nil {
		log.Fatal("config: ", err)
	}
	jwtSecret = []byte(cfg.JWTSecret)

	// Support a lightweight migrate command: `./marketbe migrate`
	// It runs AutoMigrate and seeding then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB()
		fmt.Println("migration and seeding completed")
		return
	}

	initDB()

	if err := initImagePipeline(); err != nil {
		log.Fatal("image store: ", err)
	}
	if cfg.Upload.Watch {
		go watchUploadDir(cfg.Upload.Dir)
	}

	r := gin.Default()
	r.Use(cors.New(corsConfig()))

	setupRoutes(r)

	r.Run(":" + cfg.Port)
}

// initImagePipeline wires the store, ingestor and reconciler from the loaded
// config.
func initImagePipeline() error {
	var err error
	imgStore, err = images.NewDiskStore(cfg.Upload.Dir)
	if err != nil {
		return err
	}
	ingestor = images.NewIngestor(cfg.Upload.policy(), imgStore, publicImagePrefix)
	prefixes := append([]string{publicImagePrefix}, legacyImagePrefixes...)
	reconciler = images.NewReconciler(imgStore, prefixes...)
	return nil
}

func corsConfig() cors.Config {
	c := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSOrigins
	}
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	return c
}
