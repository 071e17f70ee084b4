// 创建教师账号脚本
//
// 教师端接口只读,账号不开放注册,部署后用此脚本创建。
//
// 用法: go run scripts/create_teacher.go -name "张老师" -email teacher@example.com -password secret123
package main

import (
	"flag"
	"log"

	"futuretech_backend/internal/config"
	"futuretech_backend/internal/model"
	"futuretech_backend/pkg/database"
	"futuretech_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	name := flag.String("name", "", "教师姓名")
	email := flag.String("email", "", "登录邮箱")
	password := flag.String("password", "", "登录密码,至少 8 位")
	admin := flag.Bool("admin", false, "创建管理员而非教师")
	flag.Parse()

	if *name == "" || *email == "" || len(*password) < 8 {
		log.Fatal("用法: go run scripts/create_teacher.go -name <姓名> -email <邮箱> -password <至少8位密码> [-admin]")
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("密码哈希失败: %v", err)
	}

	role := model.Teacher
	if *admin {
		role = model.Admin
	}
	user := &model.User{
		Name:     *name,
		Email:    *email,
		Password: string(hashed),
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		log.Fatalf("创建账号失败: %v", err)
	}
	log.Printf("账号创建成功: id=%d email=%s role=%s", user.ID, user.Email, user.Role)
}
