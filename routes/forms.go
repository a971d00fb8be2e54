package routes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/services"
	"github.com/navbryce/yatube/util"
)

const (
	requiredMsg      = "This field is required."
	invalidChoiceMsg = "Select a valid choice. That choice is not one of the available choices."
	invalidImageMsg  = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	invalidNameMsg   = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."

	imagePrefix = "posts/"
)

var usernameRegexp = regexp.MustCompile(`^[\w.@+-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report errors under the submitted field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegexp.MatchString(fl.Field().String())
	})
	return v
}

// FormErrors maps a field name to its messages
type FormErrors map[string][]string

func (fe FormErrors) Add(field string, message string) {
	fe[field] = append(fe[field], message)
}

func (fe FormErrors) Valid() bool {
	return len(fe) == 0
}

func validationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return requiredMsg
	case "max":
		return fmt.Sprintf("Ensure this value has at most %v characters (it has %v).", err.Param(), len([]rune(fmt.Sprint(err.Value()))))
	case "username":
		return invalidNameMsg
	default:
		return fmt.Sprintf("Enter a valid value (%v).", err.Tag())
	}
}

// validateForm runs the validate tags of form and collects the failures
func validateForm(form interface{}) FormErrors {
	errs := FormErrors{}
	if err := validate.Struct(form); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			errs.Add("__all__", err.Error())
			return errs
		}
		for _, fieldErr := range validationErrs {
			errs.Add(fieldErr.Field(), validationMessage(fieldErr))
		}
	}
	return errs
}

// PostForm is the create/edit post form as shown to and submitted by the author
type PostForm struct {
	Text   string     `form:"text" validate:"required"`
	Group  int64      `form:"-"`
	Errors FormErrors `form:"-" validate:"-"`

	image *multipart.FileHeader
}

func (pf *PostForm) Valid() bool {
	return pf.Errors.Valid()
}

func postFormFromPost(post *model.Post) *PostForm {
	return &PostForm{
		Text:   post.Text,
		Group:  post.GroupId(),
		Errors: FormErrors{},
	}
}

type postFormReq struct {
	Text  string `form:"text"`
	Group string `form:"group"`
}

// GroupChoices resolves the group select of the post form
type GroupChoices interface {
	GetGroups(ctx context.Context) []*model.Group
	GetGroupChoice(ctx context.Context, id int64) (*model.Group, error)
}

func bindPostForm(c *gin.Context, groups GroupChoices) (*PostForm, *util.HTTPError) {
	var req postFormReq
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		return nil, util.BuildFormBindHTTPErr(err)
	}

	form := &PostForm{Text: util.CleanText(req.Text)}
	form.Errors = validateForm(form)

	if rawGroup := strings.TrimSpace(req.Group); rawGroup != "" {
		groupId, err := strconv.ParseInt(rawGroup, 10, 64)
		if err != nil {
			form.Errors.Add("group", invalidChoiceMsg)
		} else if group, err := groups.GetGroupChoice(c, groupId); err != nil {
			return nil, util.BuildDbHTTPErr(err)
		} else if group == nil {
			form.Errors.Add("group", invalidChoiceMsg)
		} else {
			form.Group = group.Id
		}
	}

	image, err := c.FormFile("image")
	switch {
	case err == nil:
		if image.Size > 0 || image.Filename != "" {
			form.image = image
			if err := checkImage(image); err != nil {
				form.Errors.Add("image", invalidImageMsg)
			}
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		return nil, util.BuildFormBindHTTPErr(err)
	}
	return form, nil
}

// checkImage sniffs the upload's content
func checkImage(header *multipart.FileHeader) error {
	file, err := header.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return err
	}
	if n == 0 || !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
		return errors.New("not an image")
	}
	return nil
}

// storeImage uploads the form's image and returns its blob name, empty when no image was sent
func storeImage(ctx context.Context, images services.ImageStore, form *PostForm) (string, error) {
	if form.image == nil {
		return "", nil
	}
	file, err := form.image.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	head := make([]byte, 512)
	n, _ := io.ReadFull(file, head)
	contentType := http.DetectContentType(head[:n])
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	blobName := imagePrefix + uuid.NewString() + strings.ToLower(filepath.Ext(form.image.Filename))
	if err := images.Put(ctx, blobName, contentType, file); err != nil {
		return "", err
	}
	return blobName, nil
}

type CommentForm struct {
	Text   string     `form:"text" validate:"required"`
	Errors FormErrors `form:"-" validate:"-"`
}

func bindCommentForm(c *gin.Context) (*CommentForm, *util.HTTPError) {
	form := &CommentForm{}
	if c.Request.Method == http.MethodPost {
		if err := c.ShouldBindWith(form, binding.Form); err != nil {
			return nil, util.BuildFormBindHTTPErr(err)
		}
	}
	form.Text = util.CleanText(form.Text)
	form.Errors = validateForm(form)
	return form, nil
}

type LoginForm struct {
	IdToken  string     `form:"id_token" validate:"required"`
	Username string     `form:"username" validate:"omitempty,max=150,username"`
	Next     string     `form:"next"`
	Errors   FormErrors `form:"-" validate:"-"`
}
