package main

import (
	_ "Backend-PackSurvey/docs"
	"Backend-PackSurvey/src/controllers"
	"Backend-PackSurvey/src/database"
	"Backend-PackSurvey/src/jobs"
	"Backend-PackSurvey/src/routes"
	"Backend-PackSurvey/src/seeder"
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
)

func main() {
	seed := flag.Bool("seed", false, "seed default questions and admin user before starting")
	flag.Parse()

	// เชื่อมต่อกับ MongoDB
	err := database.ConnectMongoDB()
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}

	// สร้าง index ที่จำเป็น (unique response ต่อคำถามใน session)
	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(indexCtx); err != nil {
		cancel()
		log.Fatalf("Error creating indexes: %v", err)
	}
	cancel()

	// Redis + Asynq เป็น optional ถ้าไม่มีก็ทำงานแบบไม่มี cache
	database.InitRedis()
	database.InitAsynq()

	if *seed {
		if err := seeder.SeedDefaultQuestions(); err != nil {
			log.Fatalf("Error seeding questions: %v", err)
		}
		if err := seeder.SeedAdminUser(); err != nil {
			log.Fatalf("Error seeding admin user: %v", err)
		}
	}

	// ประกอบ service ของ survey flow
	controllers.InitFlowManager()

	// worker สำหรับ refresh dashboard stats เบื้องหลัง
	jobs.RunWorker()

	// สร้าง app instance
	app := fiber.New()

	// ✅ เปิดใช้งาน CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false, // ❌ ต้องเป็น false ถ้าใช้ "*"
	}))

	// เปิดใช้งาน Swagger ที่ URL /swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// รวม routes จากแต่ละ module
	routes.InitRoutes(app)

	// get url from .env
	appURI := os.Getenv("APP_URI")
	if appURI == "" {
		appURI = "8888" // ใช้ 8888 เป็นค่าเริ่มต้น
	}

	// เริ่มเซิร์ฟเวอร์
	log.Println("Server is running on port " + appURI)
	err = app.Listen(fmt.Sprintf(":%s", url.PathEscape(appURI)))
	if err != nil {
		log.Fatal(err)
	}
}
