package main

import (
	"github.com/oksasatya/bootcamp-directory/internal/application"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/pkg/geocoder"
)

// seedPassword is shared by every seeded account.
const seedPassword = "123456"

var seedUsers = []application.CreateUserInput{
	{Name: "Admin Account", Email: "admin@gmail.com", Role: entity.RoleAdmin},
	{Name: "Publisher Account", Email: "publisher@gmail.com", Role: entity.RolePublisher},
	{Name: "Second Publisher", Email: "publisher2@gmail.com", Role: entity.RolePublisher},
	{Name: "John Doe", Email: "john@gmail.com", Role: entity.RoleUser},
	{Name: "Kevin Smith", Email: "kevin@gmail.com", Role: entity.RoleUser},
}

// seedZipcodes resolves the seed addresses without calling the geocoding provider.
var seedZipcodes = staticGeocoder{
	"02215": {Latitude: 42.3505, Longitude: -71.1054, FormattedAddress: "233 Bay State Rd, Boston, MA 02215, US"},
	"02118": {Latitude: 42.3370, Longitude: -71.0736, FormattedAddress: "45 Upton St, Boston, MA 02118, US"},
}

type seedBootcamp struct {
	Publisher string
	Input     application.CreateBootcampInput
	Courses   []application.CreateCourseInput
}

var seedBootcamps = []seedBootcamp{
	{
		Publisher: "publisher@gmail.com",
		Input: application.CreateBootcampInput{
			Name:          "Devworks Bootcamp",
			Description:   "Devworks is a full stack JavaScript Bootcamp located in the heart of Boston that focuses on the technologies you need to get a high paying job as a web developer",
			Website:       "https://devworks.com",
			Phone:         "(111) 111-1111",
			Email:         "enroll@devworks.com",
			Address:       "233 Bay State Rd Boston MA 02215",
			Zipcode:       "02215",
			Careers:       []string{"Web Development", "UI/UX", "Business"},
			Housing:       true,
			JobAssistance: true,
			AcceptGI:      true,
		},
		Courses: []application.CreateCourseInput{
			{Title: "Front End Web Development", Description: "HTML, CSS and JavaScript fundamentals with a modern frontend framework", Weeks: 8, Tuition: 8000, MinimumSkill: entity.SkillBeginner, ScholarshipAvailable: true},
			{Title: "Full Stack Web Development", Description: "Node.js, databases and deployment on top of the frontend track", Weeks: 12, Tuition: 10000, MinimumSkill: entity.SkillIntermediate},
		},
	},
	{
		Publisher: "publisher2@gmail.com",
		Input: application.CreateBootcampInput{
			Name:         "ModernTech Bootcamp",
			Description:  "ModernTech has one goal, and that is to make you a rockstar developer and/or designer with a six figure salary",
			Website:      "https://moderntech.com",
			Phone:        "(222) 222-2222",
			Email:        "enroll@moderntech.com",
			Address:      "45 Upton St Boston MA 02118",
			Zipcode:      "02118",
			Careers:      []string{"UI/UX", "Mobile Development"},
			JobGuarantee: true,
		},
		Courses: []application.CreateCourseInput{
			{Title: "UI/UX", Description: "Design thinking, prototyping and usability testing", Weeks: 12, Tuition: 10000, MinimumSkill: entity.SkillIntermediate},
			{Title: "Mobile Development", Description: "Native and cross platform mobile applications", Weeks: 16, Tuition: 12000, MinimumSkill: entity.SkillAdvanced, ScholarshipAvailable: true},
		},
	},
}

type seedReview struct {
	Author   string
	Bootcamp string
	Input    application.ReviewInput
}

var seedReviews = []seedReview{
	{Author: "john@gmail.com", Bootcamp: "Devworks Bootcamp", Input: application.ReviewInput{Title: "Learned a ton", Text: "Great instructors and a realistic curriculum.", Rating: 8}},
	{Author: "kevin@gmail.com", Bootcamp: "Devworks Bootcamp", Input: application.ReviewInput{Title: "Solid", Text: "Good pace, housing was a plus.", Rating: 7}},
	{Author: "john@gmail.com", Bootcamp: "ModernTech Bootcamp", Input: application.ReviewInput{Title: "Worth it", Text: "Landed a job two months after finishing.", Rating: 10}},
}

type staticGeocoder map[string]geocoder.Location
