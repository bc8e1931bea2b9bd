package controllers

import (
	"errors"
	"strconv"

	"cfaprep/backend/config"
	"cfaprep/backend/models"
	"cfaprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type QuestionsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewQuestionsController(db *gorm.DB, cfg *config.Config) *QuestionsController {
	return &QuestionsController{DB: db, Cfg: cfg}
}

// studentView shapes a question for candidates. The answer key stays
// server-side; correctness is only revealed through answer submission.
func studentView(q models.Question) fiber.Map {
	view := fiber.Map{
		"id":         q.ID,
		"topic_id":   q.TopicID,
		"text":       q.Text,
		"option_a":   q.OptionA,
		"option_b":   q.OptionB,
		"option_c":   q.OptionC,
		"difficulty": q.Difficulty,
	}
	if q.ChapterID != nil {
		view["chapter_id"] = *q.ChapterID
	}
	if q.OptionD != nil {
		view["option_d"] = *q.OptionD
	}
	return view
}

// GetTopicQuestions lists a topic's questions for practice, optionally
// filtered by chapter and difficulty.
func (qc *QuestionsController) GetTopicQuestions(c *fiber.Ctx) error {
	topicID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid topic ID")
	}

	var topic models.Topic
	if err := qc.DB.First(&topic, topicID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Topic not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	query := qc.DB.Where("topic_id = ?", topicID)
	if chapterID := c.QueryInt("chapter_id", 0); chapterID > 0 {
		query = query.Where("chapter_id = ?", chapterID)
	}
	if difficulty := c.QueryInt("difficulty", 0); difficulty >= 1 && difficulty <= 3 {
		query = query.Where("difficulty = ?", difficulty)
	}

	var questions []models.Question
	if err := query.Order("id").Find(&questions).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(questions))
	for _, q := range questions {
		result = append(result, studentView(q))
	}

	return c.JSON(result)
}

// GetQuestion returns a single question in the student view.
func (qc *QuestionsController) GetQuestion(c *fiber.Ctx) error {
	questionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid question ID")
	}

	var question models.Question
	if err := qc.DB.First(&question, questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Question not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(studentView(question))
}

type questionInput struct {
	TopicID       uint    `json:"topic_id"`
	ChapterID     *uint   `json:"chapter_id"`
	Text          string  `json:"text"`
	OptionA       string  `json:"option_a"`
	OptionB       string  `json:"option_b"`
	OptionC       string  `json:"option_c"`
	OptionD       *string `json:"option_d"`
	CorrectOption string  `json:"correct_option"`
	Difficulty    int     `json:"difficulty"`
}

func (in *questionInput) validate() map[string]string {
	fieldErrors := map[string]string{}
	if in.TopicID == 0 {
		fieldErrors["topic_id"] = "topic_id is required"
	}
	if in.Text == "" {
		fieldErrors["text"] = "text is required"
	}
	if in.OptionA == "" || in.OptionB == "" || in.OptionC == "" {
		fieldErrors["options"] = "options A, B and C are required"
	}
	switch in.CorrectOption {
	case "A", "B", "C":
	case "D":
		if in.OptionD == nil {
			fieldErrors["correct_option"] = "correct_option D requires option_d"
		}
	default:
		fieldErrors["correct_option"] = "correct_option must be one of A, B, C, D"
	}
	if in.Difficulty < 1 || in.Difficulty > 3 {
		fieldErrors["difficulty"] = "difficulty must be between 1 and 3"
	}
	return fieldErrors
}

// CreateQuestion creates a question (admin only).
func (qc *QuestionsController) CreateQuestion(c *fiber.Ctx) error {
	var input questionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fieldErrors := input.validate(); len(fieldErrors) > 0 {
		return utils.ValidationError(c, fieldErrors)
	}

	var topic models.Topic
	if err := qc.DB.First(&topic, input.TopicID).Error; err != nil {
		return utils.NotFound(c, "Topic not found")
	}

	question := models.Question{
		TopicID:       input.TopicID,
		ChapterID:     input.ChapterID,
		Text:          input.Text,
		OptionA:       input.OptionA,
		OptionB:       input.OptionB,
		OptionC:       input.OptionC,
		OptionD:       input.OptionD,
		CorrectOption: input.CorrectOption,
		Difficulty:    input.Difficulty,
	}
	if err := qc.DB.Create(&question).Error; err != nil {
		return utils.BadRequest(c, "Could not create question")
	}

	return utils.Created(c, question)
}

// UpdateQuestion replaces a question's content (admin only). Difficulty is
// immutable once set.
func (qc *QuestionsController) UpdateQuestion(c *fiber.Ctx) error {
	questionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid question ID")
	}

	var question models.Question
	if err := qc.DB.First(&question, questionID).Error; err != nil {
		return utils.NotFound(c, "Question not found")
	}

	var input questionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	input.TopicID = question.TopicID
	input.Difficulty = question.Difficulty
	if fieldErrors := input.validate(); len(fieldErrors) > 0 {
		return utils.ValidationError(c, fieldErrors)
	}

	question.ChapterID = input.ChapterID
	question.Text = input.Text
	question.OptionA = input.OptionA
	question.OptionB = input.OptionB
	question.OptionC = input.OptionC
	question.OptionD = input.OptionD
	question.CorrectOption = input.CorrectOption

	if err := qc.DB.Save(&question).Error; err != nil {
		return utils.BadRequest(c, "Could not update question")
	}

	return c.JSON(question)
}

// DeleteQuestion removes a question (admin only). Existing answers and
// progress rows keep their history.
func (qc *QuestionsController) DeleteQuestion(c *fiber.Ctx) error {
	questionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid question ID")
	}

	if err := qc.DB.Delete(&models.Question{}, questionID).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete question")
	}

	return utils.NoContent(c)
}
