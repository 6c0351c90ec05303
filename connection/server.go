package connection

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"dayflow/controller/admin"
	"dayflow/controller/attachment"
	"dayflow/controller/fcm"
	"dayflow/controller/habit"
	"dayflow/controller/note"
	"dayflow/controller/notification"
	"dayflow/controller/reminder"
	"dayflow/controller/task"
	"dayflow/middleware"
	"dayflow/scheduler"
	"dayflow/services"
)

func StartServer() {
	router := gin.Default()

	fb, err := FBConnection()
	if err != nil {
		log.Fatalf("Failed to initialize Firebase clients: %v", err)
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Api is running!"})
	})

	router.Use(cors.Default())

	store := services.NewStore(fb.Firestore)
	taskRepo := services.NewTaskRepo(store)
	habitRepo := services.NewHabitRepo(store)
	noteRepo := services.NewNoteRepo(store)
	notificationRepo := services.NewNotificationRepo(store)
	pushService := services.NewFCMService(store, fb.Messaging)
	campaigns := services.NewCampaignService(pushService)

	authMW := middleware.FirebaseAuth(fb.Auth)
	adminMW := middleware.AdminAuth()

	task.TaskController(router, authMW, taskRepo)
	habit.HabitController(router, authMW, habitRepo)
	note.NoteController(router, authMW, noteRepo)
	notification.NotificationController(router, authMW, notificationRepo)
	fcm.FCMController(router, authMW, pushService)
	reminder.ReminderController(router, authMW)
	admin.AdminController(router, adminMW, campaigns, pushService)

	if fb.Bucket != nil {
		attachments := services.NewAttachmentService(fb.Bucket, fb.BucketName)
		attachment.AttachmentController(router, authMW, attachments)
	}

	if os.Getenv("ENABLE_SCHEDULER") == "true" {
		scheduler.StartScheduler(campaigns)
	}

	router.Run()
}
