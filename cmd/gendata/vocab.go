package main

import (
	"fmt"
	"math/rand"
	"strings"

	"benchscope/internal/model"
)

type areaVocab struct {
	area       string
	modalities []string
	tasks      []string
}

var vocab = []areaVocab{
	{"Computer Vision", []string{"Images", "Videos", "3D", "Point cloud"}, []string{
		"Image Classification", "Object Detection", "Semantic Segmentation", "Instance Segmentation",
		"Pose Estimation", "Depth Estimation", "Image Generation", "Action Recognition", "3D Reconstruction",
	}},
	{"Natural Language Processing", []string{"Texts", "Tabular"}, []string{
		"Question Answering", "Machine Translation", "Text Classification", "Named Entity Recognition",
		"Summarization", "Natural Language Inference", "Language Modelling", "Sentiment Analysis",
	}},
	{"Speech", []string{"Audio", "Speech", "Texts"}, []string{
		"Speech Recognition", "Speaker Verification", "Speech Synthesis", "Keyword Spotting",
	}},
	{"Medical", []string{"Medical", "Images", "Biomedical"}, []string{
		"Medical Image Segmentation", "Lesion Detection", "Disease Classification",
	}},
	{"Robotics", []string{"Environment", "Videos", "LiDAR"}, []string{
		"Visual Navigation", "Robotic Grasping", "Autonomous Driving",
	}},
	{"Graphs", []string{"Graphs"}, []string{
		"Node Classification", "Link Prediction", "Graph Classification",
	}},
}

var (
	nameParts = []string{"Open", "Deep", "Wild", "Mega", "Micro", "Synth", "Real", "Multi", "Long", "Fast", "Human", "Urban"}
	nameTails = []string{"Net", "Bench", "Set", "Corpus", "QA", "Scenes", "Vox", "Speech", "Graph", "Med", "Drive", "Text"}
	licenses  = []string{"CC BY 4.0", "CC BY-SA 4.0", "CC BY-NC 4.0", "MIT", "Apache-2.0", "Custom", ""}
	languages = []string{"English", "Chinese", "German", "French", "Spanish", "Japanese", "Arabic", "Hindi"}
)

// generate builds n records. The same rng state yields the same catalogue.
func generate(rng *rand.Rand, n int) []model.Record {
	out := make([]model.Record, 0, n)
	used := map[string]int{}
	for i := 0; i < n; i++ {
		v := vocab[rng.Intn(len(vocab))]
		name := nameParts[rng.Intn(len(nameParts))] + nameTails[rng.Intn(len(nameTails))]
		used[name]++
		if used[name] > 1 {
			name = fmt.Sprintf("%s-%d", name, used[name])
		}
		tasks := pick(rng, v.tasks, 1+rng.Intn(2))
		r := model.Record{
			SNo:             fmt.Sprint(i + 1),
			ID:              name,
			Task:            strings.Join(tasks, ", "),
			Subtask:         maybe(rng, 0.5, tasks[0]),
			Description:     maybe(rng, 0.85, fmt.Sprintf("%s is a %s benchmark for %s.", name, strings.ToLower(v.area), strings.ToLower(tasks[0]))),
			Area:            v.area,
			Modalities:      strings.Join(pick(rng, v.modalities, 1+rng.Intn(2)), ","),
			AssociatedTasks: strings.Join(pick(rng, v.tasks, rng.Intn(3)), ", "),
			YearPublished:   maybe(rng, 0.95, fmt.Sprint(1995+rng.Intn(30))),
			DatasetSize:     maybe(rng, 0.7, size(rng)),
			License:         licenses[rng.Intn(len(licenses))],
			SourcePageURL:   "https://paperswithcode.com/dataset/" + strings.ToLower(name),
		}
		if v.area == "Natural Language Processing" || v.area == "Speech" {
			r.Languages = strings.Join(pick(rng, languages, 1+rng.Intn(3)), ", ")
		}
		if rng.Float64() < 0.1 {
			// a few datasets span two areas
			other := vocab[rng.Intn(len(vocab))].area
			if other != v.area {
				r.Area = v.area + ", " + other
			}
		}
		if rng.Float64() < 0.6 {
			r.HomepageURL = "https://" + strings.ToLower(name) + ".example.org/"
		}
		if rng.Float64() < 0.5 {
			r.PaperURL = fmt.Sprintf("https://arxiv.org/abs/%d.%05d", 1500+rng.Intn(900), rng.Intn(100000))
		}
		var slugs []string
		for _, t := range tasks {
			slugs = append(slugs, slug(t)+"-on-"+strings.ToLower(name))
		}
		r.BenchmarkURLs = strings.Join(slugs, ",")
		out = append(out, r)
	}
	return out
}

func pick(rng *rand.Rand, from []string, k int) []string {
	if k > len(from) {
		k = len(from)
	}
	idx := rng.Perm(len(from))[:k]
	out := make([]string, k)
	for i, j := range idx {
		out[i] = from[j]
	}
	return out
}

func maybe(rng *rand.Rand, p float64, s string) string {
	if rng.Float64() < p {
		return s
	}
	return ""
}

func size(rng *rand.Rand) string {
	switch rng.Intn(3) {
	case 0:
		return fmt.Sprintf("%dK", 1+rng.Intn(999))
	case 1:
		return fmt.Sprintf("%dM", 1+rng.Intn(50))
	}
	return fmt.Sprintf("%dh", 10+rng.Intn(5000))
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}
