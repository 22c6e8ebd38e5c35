package handler_test

import (
	"net/http"
	"testing"

	"github.com/albretostimbung/naraicoderbe/internal/model"
	"github.com/albretostimbung/naraicoderbe/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settingBody(key, value, typ string) map[string]interface{} {
	return map[string]interface{}{
		"key":   key,
		"value": value,
		"group": "general",
		"type":  typ,
	}
}

func TestCreateSettingChecksValueType(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		value   string
		message string
	}{
		{"number", "number", "abc", "Value must be a number"},
		{"boolean", "boolean", "yes", "Value must be a boolean"},
		{"json", "json", "{bad", "Value must be a valid JSON string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			rec := testutil.Do(t, f.e, http.MethodPost, "/settings", settingBody("k_"+tt.name, tt.value, tt.typ), f.token)
			testutil.StatusIs(t, http.StatusUnprocessableEntity, rec)
			assert.Equal(t, tt.message, testutil.Decode(t, rec, nil).Meta.Message)
		})
	}

	f := setup(t)
	for key, body := range map[string]map[string]interface{}{
		"max_attendees": settingBody("max_attendees", "42", "number"),
		"maintenance":   settingBody("maintenance", "true", "boolean"),
		"theme":         settingBody("theme", `{"a":1}`, "json"),
		"tagline":       settingBody("tagline", "anything goes", "string"),
	} {
		rec := testutil.Do(t, f.e, http.MethodPost, "/settings", body, f.token)
		testutil.StatusIs(t, http.StatusCreated, rec)

		var setting model.Setting
		env := testutil.Decode(t, rec, &setting)
		assert.Equal(t, "Setting created successfully", env.Meta.Message)
		assert.Equal(t, key, setting.Key)
	}
}

func TestCreateSettingDuplicateKey(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.db.Create(&model.Setting{Key: "site_name", Value: "NaraiCoder", Group: "general", Type: "string"}).Error)

	rec := testutil.Do(t, f.e, http.MethodPost, "/settings", settingBody("site_name", "Other", "string"), f.token)
	testutil.StatusIs(t, http.StatusUnprocessableEntity, rec)
	assert.Equal(t, []string{"The key has already been taken."}, testutil.Decode(t, rec, nil).Errors["key"])
}

func TestUpdateSettingChecksMergedType(t *testing.T) {
	f := setup(t)
	setting := &model.Setting{Key: "max_attendees", Value: "42", Group: "events", Type: "number"}
	require.NoError(t, f.db.Create(setting).Error)
	path := "/settings/" + itoa(setting.ID)

	rec := testutil.Do(t, f.e, http.MethodPatch, path, map[string]interface{}{"type": "boolean"}, f.token)
	testutil.StatusIs(t, http.StatusUnprocessableEntity, rec)
	assert.Equal(t, "Value must be a boolean", testutil.Decode(t, rec, nil).Meta.Message)

	var stored model.Setting
	require.NoError(t, f.db.First(&stored, setting.ID).Error)
	assert.Equal(t, "number", stored.Type)
	assert.Equal(t, "42", stored.Value)

	rec = testutil.Do(t, f.e, http.MethodPatch, path, map[string]interface{}{"value": "64", "key": "max_attendees"}, f.token)
	testutil.StatusIs(t, http.StatusOK, rec)
	var updated model.Setting
	env := testutil.Decode(t, rec, &updated)
	assert.Equal(t, "Setting updated successfully", env.Meta.Message)
	assert.Equal(t, "64", updated.Value)
	assert.Equal(t, "number", updated.Type)
}

func TestListSettingsGroupedAndCached(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.db.Create(&[]model.Setting{
		{Key: "site_name", Value: "NaraiCoder", Group: "general", Type: "string"},
		{Key: "contact_email", Value: "hello@naraicoder.com", Group: "general", Type: "string"},
		{Key: "twitter_url", Value: "https://twitter.com/naraicoder", Group: "social", Type: "string"},
	}).Error)

	rec := testutil.Do(t, f.e, http.MethodGet, "/settings", nil, "")
	testutil.StatusIs(t, http.StatusOK, rec)

	var grouped map[string][]model.Setting
	env := testutil.Decode(t, rec, &grouped)
	assert.Equal(t, "Settings retrieved successfully", env.Meta.Message)
	require.Len(t, grouped["general"], 2)
	assert.Equal(t, "contact_email", grouped["general"][0].Key)
	assert.Equal(t, "site_name", grouped["general"][1].Key)
	require.Len(t, grouped["social"], 1)

	// written behind the API, so the cached listing does not see it
	require.NoError(t, f.db.Create(&model.Setting{Key: "github_url", Value: "https://github.com/naraicoder", Group: "social", Type: "string"}).Error)
	rec = testutil.Do(t, f.e, http.MethodGet, "/settings", nil, "")
	testutil.StatusIs(t, http.StatusOK, rec)
	testutil.Decode(t, rec, &grouped)
	assert.Len(t, grouped["social"], 1)

	rec = testutil.Do(t, f.e, http.MethodPost, "/settings", settingBody("site_description", "Community for coders", "string"), f.token)
	testutil.StatusIs(t, http.StatusCreated, rec)

	rec = testutil.Do(t, f.e, http.MethodGet, "/settings", nil, "")
	testutil.StatusIs(t, http.StatusOK, rec)
	grouped = nil
	testutil.Decode(t, rec, &grouped)
	assert.Len(t, grouped["social"], 2)
	assert.Len(t, grouped["general"], 3)

	rec = testutil.Do(t, f.e, http.MethodGet, "/settings?group=social", nil, "")
	testutil.StatusIs(t, http.StatusOK, rec)
	grouped = nil
	testutil.Decode(t, rec, &grouped)
	assert.Len(t, grouped, 1)
	assert.Len(t, grouped["social"], 2)
}

func TestDeleteSetting(t *testing.T) {
	f := setup(t)
	setting := &model.Setting{Key: "site_name", Value: "NaraiCoder", Group: "general", Type: "string"}
	require.NoError(t, f.db.Create(setting).Error)
	path := "/settings/" + itoa(setting.ID)

	rec := testutil.Do(t, f.e, http.MethodGet, path, nil, f.token)
	testutil.StatusIs(t, http.StatusOK, rec)

	rec = testutil.Do(t, f.e, http.MethodDelete, path, nil, f.token)
	testutil.StatusIs(t, http.StatusOK, rec)
	assert.Equal(t, "Setting deleted successfully", testutil.Decode(t, rec, nil).Meta.Message)

	rec = testutil.Do(t, f.e, http.MethodGet, path, nil, f.token)
	testutil.StatusIs(t, http.StatusNotFound, rec)
	assert.Equal(t, "Setting not found", testutil.Decode(t, rec, nil).Meta.Message)
}
