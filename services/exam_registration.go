package services

import (
	"bytes"
	"context"
	"errors"
	"path"
	"strings"

	"github.com/anjiri1684/institute_manager/models"
	"github.com/anjiri1684/institute_manager/pkg/apperrors"
	"github.com/anjiri1684/institute_manager/storage"
	"github.com/anjiri1684/institute_manager/utils"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ExamFileFields are the multipart fields accepted by the registration form.
var ExamFileFields = []string{"adhar_card", "photo", "tc", "marksheet"}

type ExamForm struct {
	FullName       string `form:"full_name" json:"full_name" validate:"required"`
	FatherName     string `form:"father_name" json:"father_name"`
	DOB            string `form:"dob" json:"dob"`
	Sex            string `form:"sex" json:"sex"`
	AddressLine1   string `form:"address_line1" json:"address_line1"`
	AddressLine2   string `form:"address_line2" json:"address_line2"`
	City           string `form:"city" json:"city"`
	State          string `form:"state" json:"state"`
	Pincode        string `form:"pincode" json:"pincode"`
	Subject        string `form:"subject" json:"subject"`
	Aadhaar        string `form:"aadhaar" json:"aadhaar"`
	Mobile         string `form:"mobile" json:"mobile" validate:"required"`
	TenthPercent   string `form:"tenth_percent" json:"tenth_percent"`
	TwelfthPercent string `form:"twelfth_percent" json:"twelfth_percent"`
}

type UploadedFile struct {
	Field        string
	OriginalName string
	MimeType     string
	Content      []byte
}

type ExamRegistrations struct {
	DB         *gorm.DB
	Store      storage.Store
	AadhaarKey string
}

// Submit stores the files first and then writes the registration and its
// attachment rows in one transaction. If the transaction fails the stored
// files are removed again.
func (e *ExamRegistrations) Submit(ctx context.Context, form ExamForm, files []UploadedFile) (models.ExamRegistration, error) {
	form.FullName = strings.TrimSpace(form.FullName)
	form.Mobile = strings.TrimSpace(form.Mobile)
	if err := utils.ValidateStruct(form); err != nil {
		return models.ExamRegistration{}, err
	}

	reg := models.ExamRegistration{
		FullName:       form.FullName,
		FatherName:     utils.NullableString(form.FatherName),
		DOB:            utils.ParseDate(form.DOB),
		Sex:            utils.NullableString(form.Sex),
		AddressLine1:   utils.NullableString(form.AddressLine1),
		AddressLine2:   utils.NullableString(form.AddressLine2),
		City:           utils.NullableString(form.City),
		State:          utils.NullableString(form.State),
		Pincode:        utils.NullableString(form.Pincode),
		Subject:        utils.NullableString(form.Subject),
		Mobile:         form.Mobile,
		TenthPercent:   utils.ParseOptionalFloat(form.TenthPercent),
		TwelfthPercent: utils.ParseOptionalFloat(form.TwelfthPercent),
	}
	if aadhaar := strings.TrimSpace(form.Aadhaar); aadhaar != "" {
		reg.AadhaarMasked = utils.MaskAadhaar(aadhaar)
		reg.AadhaarHash = utils.HashAadhaar(aadhaar, e.AadhaarKey)
	}

	var stored []string
	for _, f := range files {
		name := utils.UniqueFilename(f.OriginalName)
		key := path.Join("exams", name)
		url, err := e.Store.Put(ctx, key, bytes.NewReader(f.Content), f.MimeType)
		if err != nil {
			e.removeFiles(ctx, stored)
			return models.ExamRegistration{}, apperrors.NewStorageError("store "+f.Field, err)
		}
		stored = append(stored, key)
		reg.Attachments = append(reg.Attachments, models.ExamAttachment{
			Field:        f.Field,
			Filename:     name,
			OriginalName: f.OriginalName,
			MimeType:     f.MimeType,
			SizeBytes:    int64(len(f.Content)),
			URL:          url,
		})
	}

	err := e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&reg).Error
	})
	if err != nil {
		e.removeFiles(ctx, stored)
		return models.ExamRegistration{}, apperrors.NewStorageError("create exam registration", err)
	}
	return reg, nil
}

func (e *ExamRegistrations) removeFiles(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := e.Store.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to remove stored exam file")
		}
	}
}

type ExamSummary struct {
	ID       uint    `json:"id"`
	FullName string  `json:"full_name"`
	Mobile   string  `json:"mobile"`
	Subject  *string `json:"subject"`
}

func (e *ExamRegistrations) List(ctx context.Context) ([]models.ExamRegistration, error) {
	regs := []models.ExamRegistration{}
	if err := e.DB.WithContext(ctx).Order("id DESC").Find(&regs).Error; err != nil {
		return nil, apperrors.NewStorageError("list exam registrations", err)
	}
	return regs, nil
}

func (e *ExamRegistrations) Search(ctx context.Context, search string) ([]ExamSummary, error) {
	rows := []ExamSummary{}
	q := e.DB.WithContext(ctx).Model(&models.ExamRegistration{}).Select("id, full_name, mobile, subject")
	if s := strings.TrimSpace(search); s != "" {
		q = q.Where("full_name LIKE ?", "%"+s+"%")
	}
	if err := q.Order("id DESC").Scan(&rows).Error; err != nil {
		return nil, apperrors.NewStorageError("search exam registrations", err)
	}
	return rows, nil
}

func (e *ExamRegistrations) Get(ctx context.Context, id uint) (models.ExamRegistration, []models.ExamAttachment, error) {
	var reg models.ExamRegistration
	err := e.DB.WithContext(ctx).First(&reg, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return reg, nil, apperrors.NotFoundError{Resource: "exam registration", ID: id}
	}
	if err != nil {
		return reg, nil, apperrors.NewStorageError("get exam registration", err)
	}
	atts := []models.ExamAttachment{}
	if err := e.DB.WithContext(ctx).Where("registration_id = ?", id).Order("id ASC").Find(&atts).Error; err != nil {
		return reg, nil, apperrors.NewStorageError("get exam attachments", err)
	}
	return reg, atts, nil
}

// GroupAttachments buckets attachments by the form field they came from.
func GroupAttachments(atts []models.ExamAttachment) map[string][]models.ExamAttachment {
	groups := map[string][]models.ExamAttachment{
		"aadhaar":   {},
		"photo":     {},
		"tc":        {},
		"marksheet": {},
		"others":    {},
	}
	for _, a := range atts {
		key := a.Field
		if key == "adhar_card" {
			key = "aadhaar"
		}
		if _, ok := groups[key]; !ok {
			key = "others"
		}
		groups[key] = append(groups[key], a)
	}
	return groups
}

type ExamUpdate struct {
	FatherName     string           `json:"father_name"`
	DOB            string           `json:"dob"`
	Sex            string           `json:"sex"`
	AddressLine1   string           `json:"address_line1"`
	AddressLine2   string           `json:"address_line2"`
	City           string           `json:"city"`
	State          string           `json:"state"`
	Pincode        string           `json:"pincode"`
	Subject        string           `json:"subject"`
	Mobile         string           `json:"mobile"`
	TenthPercent   utils.FlexString `json:"tenth_percent"`
	TwelfthPercent utils.FlexString `json:"twelfth_percent"`
}

// Update overwrites the editable columns; blank strings become NULL. The
// name and Aadhaar fields are not editable.
func (e *ExamRegistrations) Update(ctx context.Context, id uint, in ExamUpdate) error {
	updates := map[string]interface{}{
		"father_name":     utils.NullableString(in.FatherName),
		"dob":             utils.ParseDate(in.DOB),
		"sex":             utils.NullableString(in.Sex),
		"address_line1":   utils.NullableString(in.AddressLine1),
		"address_line2":   utils.NullableString(in.AddressLine2),
		"city":            utils.NullableString(in.City),
		"state":           utils.NullableString(in.State),
		"pincode":         utils.NullableString(in.Pincode),
		"subject":         utils.NullableString(in.Subject),
		"tenth_percent":   utils.ParseOptionalFloat(string(in.TenthPercent)),
		"twelfth_percent": utils.ParseOptionalFloat(string(in.TwelfthPercent)),
	}
	if m := strings.TrimSpace(in.Mobile); m != "" {
		updates["mobile"] = m
	}

	res := e.DB.WithContext(ctx).Model(&models.ExamRegistration{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return apperrors.NewStorageError("update exam registration", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFoundError{Resource: "exam registration", ID: id}
	}
	return nil
}

// Delete removes a registration and its attachment rows together, then the
// stored files.
func (e *ExamRegistrations) Delete(ctx context.Context, id uint) error {
	var atts []models.ExamAttachment
	err := e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("registration_id = ?", id).Find(&atts).Error; err != nil {
			return err
		}
		if err := tx.Where("registration_id = ?", id).Delete(&models.ExamAttachment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ExamRegistration{}, id).Error
	})
	if err != nil {
		return apperrors.NewStorageError("delete exam registration", err)
	}

	keys := make([]string, len(atts))
	for i, a := range atts {
		keys[i] = path.Join("exams", a.Filename)
	}
	e.removeFiles(ctx, keys)
	return nil
}
