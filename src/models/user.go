package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User ผู้ใช้ฝั่ง admin (respondent flow ไม่ต้องมี identity)
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password,omitempty" json:"-"` // bcrypt hash, ไม่ส่งกลับ
	Role     string             `bson:"role" json:"role"`
}
