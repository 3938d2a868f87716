package routes

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gridmind-ai/gridmind/backend/internal/server/middleware"
	serverutil "github.com/gridmind-ai/gridmind/backend/internal/server/util"
	"github.com/gridmind-ai/gridmind/backend/pkg/ai"
	"github.com/gridmind-ai/gridmind/backend/pkg/loader"
	"github.com/gridmind-ai/gridmind/backend/pkg/loader/graphfile"
	"github.com/gridmind-ai/gridmind/backend/pkg/loader/image"
	"github.com/gridmind-ai/gridmind/backend/pkg/loader/seriesfile"
	"github.com/gridmind-ai/gridmind/backend/pkg/logger"
	"github.com/gridmind-ai/gridmind/backend/pkg/series"
	"github.com/gridmind-ai/gridmind/backend/pkg/topo"
)

// readFormFile reads an optional multipart file field into memory. A missing
// field is not an error.
func readFormFile(c echo.Context, field string) ([]byte, string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, "", nil
	}

	src, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", err
	}

	return data, file.Filename, nil
}

// InferenceHandler runs one multimodal inference round over the uploaded
// image, graph and series inputs
func InferenceHandler(c echo.Context) error {
	type inferenceBody struct {
		Text         string   `json:"text" form:"text"`
		GraphText    string   `json:"graph_text" form:"graph_text"`
		SeriesText   string   `json:"series_text" form:"series_text"`
		Temperature  *float64 `json:"temperature" form:"temperature"`
		TopP         *float64 `json:"top_p" form:"top_p"`
		MaxNewTokens *int     `json:"max_new_tokens" form:"max_new_tokens"`
		Seed         *int     `json:"seed" form:"seed"`
	}

	type inferenceResponse struct {
		Message    string                     `json:"message,omitempty"`
		Reply      string                     `json:"reply,omitempty"`
		Prompt     string                     `json:"prompt,omitempty"`
		ImageDesc  string                     `json:"image_desc,omitempty"`
		GraphDesc  string                     `json:"graph_desc,omitempty"`
		SeriesDesc string                     `json:"series_desc,omitempty"`
		Params     *serverutil.GenerateParams `json:"params,omitempty"`
	}

	data := new(inferenceBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, inferenceResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, inferenceResponse{
			Message: "Invalid request body",
		})
	}

	ctx := c.Request().Context()

	imageData, imageName, err := readFormFile(c, "image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, inferenceResponse{
			Message: "Invalid request body",
		})
	}
	imageDesc := image.NoImage
	if imageData != nil {
		imageDesc = image.Describe(ctx, loader.BytesLoader{Data: imageData}, loader.NewInputFile(imageName))
	}

	graphData, graphName, err := readFormFile(c, "graph_file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, inferenceResponse{
			Message: "Invalid request body",
		})
	}
	fileTopo := topo.Topology{}
	if graphData != nil {
		fileTopo = graphfile.ParseFile(ctx, loader.BytesLoader{Data: graphData}, loader.NewInputFile(graphName))
	}
	graphDesc := topo.Summarize(topo.Merge(fileTopo, graphfile.ParseText(data.GraphText)))

	seriesData, seriesName, err := readFormFile(c, "series_file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, inferenceResponse{
			Message: "Invalid request body",
		})
	}
	var values []float64
	if seriesData != nil {
		values = seriesfile.ParseFile(ctx, loader.BytesLoader{Data: seriesData}, loader.NewInputFile(seriesName))
	}
	values = append(values, seriesfile.ParseText(data.SeriesText)...)
	seriesDesc := series.Summarize(values)

	params := serverutil.ResolveGenerateParams(data.Temperature, data.TopP, data.MaxNewTokens, data.Seed)
	prompt := ai.BuildPrompt(imageDesc, graphDesc, seriesDesc, data.Text)

	engine := c.(*middleware.AppContext).App.Engine
	reply, err := engine.Generate(
		ctx,
		prompt,
		ai.WithTemperature(params.Temperature),
		ai.WithTopP(params.TopP),
		ai.WithMaxNewTokens(params.MaxNewTokens),
		ai.WithSeed(params.Seed),
	)
	if err != nil {
		logger.Error("Failed to generate reply", "err", err)
		return c.JSON(http.StatusInternalServerError, inferenceResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, inferenceResponse{
		Reply:      reply,
		Prompt:     prompt,
		ImageDesc:  imageDesc,
		GraphDesc:  graphDesc,
		SeriesDesc: seriesDesc,
		Params:     &params,
	})
}
