package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/df07/go-raytracer/pkg/output"
	"github.com/df07/go-raytracer/web/server"
)

func main() {
	// A missing .env file is fine; the environment may already be set
	_ = godotenv.Load()

	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", getEnv("RAYTRACER_SCENES_DIR", "scenes"), "Directory of YAML scenes")
	flag.Parse()

	var uploader *output.S3Uploader
	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		var err error
		uploader, err = output.NewS3Uploader(output.S3Config{
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			Region:    getEnv("S3_REGION", "us-east-1"),
			Bucket:    bucket,
			ACL:       os.Getenv("S3_ACL"),
		})
		if err != nil {
			log.Fatalf("Failed to configure uploads: %v", err)
		}
		log.Printf("Uploads enabled to bucket %s", bucket)
	}

	webServer := server.NewServer(*port, *scenesDir, uploader)

	log.Printf("Raytracer Web Server")
	log.Printf("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}

// getEnv returns the environment variable or a fallback
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
